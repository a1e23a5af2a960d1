package collector

import (
	"math"
	"time"

	"TradingDashboard/internal/model"

	"github.com/samber/lo"
)

// TraceShape turns raw trace samples into volume bars on the time axis.
type TraceShape struct {
	Bucket time.Duration // width of one x step
	Scale  float64       // multiplier applied to |y|
	Origin float64       // ms added to every x; 0 keeps x relative to the date origin
}

// DefaultTraceShape matches a 990-sample trace spread over 99 days.
func DefaultTraceShape() TraceShape {
	return TraceShape{Bucket: 2*time.Hour + 24*time.Minute, Scale: 10}
}

// ShapeTrace maps y to |y|*Scale and x to x*Bucket+Origin.
func ShapeTrace(points []model.TracePoint, shape TraceShape) []model.TracePoint {
	bucketMs := float64(shape.Bucket.Milliseconds())
	return lo.Map(points, func(p model.TracePoint, _ int) model.TracePoint {
		return model.TracePoint{
			X: p.X*bucketMs + shape.Origin,
			Y: math.Abs(p.Y) * shape.Scale,
		}
	})
}
