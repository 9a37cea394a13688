package event

import "math"

// Easing selects an easing shape. Zero and Linear are both the identity.
type Easing int

const (
	None Easing = iota
	Linear
	SineOut
	SineIn
	QuadOut
	QuadIn
	SineInOut
	QuadInOut
	CubicOut
	CubicIn
	QuartOut
	QuartIn
	CubicInOut
	QuartInOut
	QuintOut
	QuintIn
	ExpoOut
	ExpoIn
	CircOut
	CircIn
	BackOut
	BackIn
	CircInOut
	BackInOut
	ElasticOut
	ElasticIn
	BounceOut
	BounceIn
	BounceInOut
	ElasticInOut
)

const (
	backC1    = 1.70158
	backC2    = backC1 * 1.525
	elasticC4 = 2 * math.Pi / 3
	elasticC5 = 2 * math.Pi / 4.5
)

func bounceOut(x float64) float64 {
	const n, d = 7.5625, 2.75
	switch {
	case x < 1/d:
		return n * x * x
	case x < 2/d:
		x -= 1.5 / d
		return n*x*x + 0.75
	case x < 2.5/d:
		x -= 2.25 / d
		return n*x*x + 0.9375
	default:
		x -= 2.625 / d
		return n*x*x + 0.984375
	}
}

// shapes is indexed by Easing; None has no entry of its own.
var shapes = [...]func(float64) float64{
	Linear:    func(x float64) float64 { return x },
	SineOut:   func(x float64) float64 { return math.Sin(x * math.Pi / 2) },
	SineIn:    func(x float64) float64 { return 1 - math.Cos(x*math.Pi/2) },
	QuadOut:   func(x float64) float64 { return 1 - (1-x)*(1-x) },
	QuadIn:    func(x float64) float64 { return x * x },
	SineInOut: func(x float64) float64 { return -(math.Cos(math.Pi*x) - 1) / 2 },
	QuadInOut: func(x float64) float64 {
		if x < 0.5 {
			return 2 * x * x
		}
		return 1 - math.Pow(-2*x+2, 2)/2
	},
	CubicOut: func(x float64) float64 { return 1 - math.Pow(1-x, 3) },
	CubicIn:  func(x float64) float64 { return x * x * x },
	QuartOut: func(x float64) float64 { return 1 - math.Pow(1-x, 4) },
	QuartIn:  func(x float64) float64 { return x * x * x * x },
	CubicInOut: func(x float64) float64 {
		if x < 0.5 {
			return 4 * x * x * x
		}
		return 1 - math.Pow(-2*x+2, 3)/2
	},
	QuartInOut: func(x float64) float64 {
		if x < 0.5 {
			return 8 * x * x * x * x
		}
		return 1 - math.Pow(-2*x+2, 4)/2
	},
	QuintOut: func(x float64) float64 { return 1 - math.Pow(1-x, 5) },
	QuintIn:  func(x float64) float64 { return x * x * x * x * x },
	ExpoOut: func(x float64) float64 {
		if x == 1 {
			return 1
		}
		return 1 - math.Pow(2, -10*x)
	},
	ExpoIn: func(x float64) float64 {
		if x == 0 {
			return 0
		}
		return math.Pow(2, 10*x-10)
	},
	CircOut: func(x float64) float64 { return math.Sqrt(1 - math.Pow(x-1, 2)) },
	CircIn:  func(x float64) float64 { return 1 - math.Sqrt(1-x*x) },
	BackOut: func(x float64) float64 { return 1 + (backC1+1)*math.Pow(x-1, 3) + backC1*math.Pow(x-1, 2) },
	BackIn:  func(x float64) float64 { return (backC1+1)*x*x*x - backC1*x*x },
	CircInOut: func(x float64) float64 {
		if x < 0.5 {
			return (1 - math.Sqrt(1-math.Pow(2*x, 2))) / 2
		}
		return (math.Sqrt(1-math.Pow(-2*x+2, 2)) + 1) / 2
	},
	BackInOut: func(x float64) float64 {
		if x < 0.5 {
			return math.Pow(2*x, 2) * ((backC2+1)*2*x - backC2) / 2
		}
		return (math.Pow(2*x-2, 2)*((backC2+1)*(x*2-2)+backC2) + 2) / 2
	},
	ElasticOut: func(x float64) float64 {
		if x == 0 || x == 1 {
			return x
		}
		return math.Pow(2, -10*x)*math.Sin((x*10-0.75)*elasticC4) + 1
	},
	ElasticIn: func(x float64) float64 {
		if x == 0 || x == 1 {
			return x
		}
		return -math.Pow(2, 10*x-10) * math.Sin((x*10-10.75)*elasticC4)
	},
	BounceOut: bounceOut,
	BounceIn:  func(x float64) float64 { return 1 - bounceOut(1-x) },
	BounceInOut: func(x float64) float64 {
		if x < 0.5 {
			return (1 - bounceOut(1-2*x)) / 2
		}
		return (1 + bounceOut(2*x-1)) / 2
	},
	ElasticInOut: func(x float64) float64 {
		if x == 0 || x == 1 {
			return x
		}
		if x < 0.5 {
			return -(math.Pow(2, 20*x-10) * math.Sin((20*x-11.125)*elasticC5)) / 2
		}
		return math.Pow(2, -20*x+10)*math.Sin((20*x-11.125)*elasticC5)/2 + 1
	},
}

func clamp(x, lo, hi float64) float64 {
	return math.Min(math.Max(x, lo), hi)
}

// Ease maps progress x through kind restricted to the sub-range [left, right]
// of the shape, renormalized so the sub-range endpoints land on 0 and 1.
func Ease(kind Easing, x, left, right float64) float64 {
	x = clamp(x, 0, 1)
	left = clamp(left, 0, 1)
	right = clamp(right, 0, 1)
	if kind <= None || int(kind) >= len(shapes) {
		return x
	}
	f := shapes[kind]
	lo, hi := f(left), f(right)
	if hi == lo {
		return x
	}
	return (f(left+(right-left)*x) - lo) / (hi - lo)
}
