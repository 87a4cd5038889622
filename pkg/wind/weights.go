package wind

import (
	"errors"
	"fmt"
)

// Weight schedule errors.
var (
	ErrNonIncreasingTimes = errors.New("keyframe times must be strictly increasing")
	ErrEmptySchedule      = errors.New("time-sampled weights need at least one keyframe")
)

// Weights holds one blend weight per direction, in Directions order.
type Weights [4]float64

// Keyframe is a weight tuple at a time code.
type Keyframe struct {
	Time    float64
	Weights Weights
}

// SpecKind tags how a WeightSpec varies over time.
type SpecKind int

const (
	Constant SpecKind = iota
	TimeSampled
)

// WeightSpec is either a constant weight tuple or a keyframed schedule.
type WeightSpec struct {
	Kind      SpecKind
	Value     Weights
	Keyframes []Keyframe
}

// ConstantWeights returns a spec holding w at every time.
func ConstantWeights(w Weights) WeightSpec {
	return WeightSpec{Kind: Constant, Value: w}
}

// Schedule returns a time-sampled spec. Keyframes must already be in
// strictly increasing time order; they are never reordered.
func Schedule(keys ...Keyframe) (WeightSpec, error) {
	spec := WeightSpec{Kind: TimeSampled, Keyframes: keys}
	if err := spec.Validate(); err != nil {
		return WeightSpec{}, err
	}
	return spec, nil
}

// Validate checks the keyframe ordering of a time-sampled spec.
func (s WeightSpec) Validate() error {
	if s.Kind != TimeSampled {
		return nil
	}
	if len(s.Keyframes) == 0 {
		return ErrEmptySchedule
	}
	for i := 1; i < len(s.Keyframes); i++ {
		prev, cur := s.Keyframes[i-1].Time, s.Keyframes[i].Time
		if cur <= prev {
			return fmt.Errorf("%w: keyframe %d at %v follows %v", ErrNonIncreasingTimes, i, cur, prev)
		}
	}
	return nil
}

// Scenario is a named wind behavior, authored as one animation track.
type Scenario struct {
	Name    string
	Weights WeightSpec
}

// DefaultScenario is bound to a freshly created skeleton.
const DefaultScenario = "noWindAnimation"

// Scenarios returns the authored wind scenarios in creation order.
func Scenarios() []Scenario {
	return []Scenario{
		{DefaultScenario, ConstantWeights(Weights{0, 0, 0, 0})},
		{"eastWindAnimation", ConstantWeights(Weights{1, 0, 0, 0})},
		{"westWindAnimation", ConstantWeights(Weights{0, 1, 0, 0})},
		{"southWindAnimation", ConstantWeights(Weights{0, 0, 1, 0})},
		{"northWindAnimation", ConstantWeights(Weights{0, 0, 0, 1})},
		{"testWindAnimation", testSway()},
	}
}

// testSway eases into an east+south gust, releases, then repeats toward west+north.
func testSway() WeightSpec {
	return WeightSpec{Kind: TimeSampled, Keyframes: []Keyframe{
		{0, Weights{0, 0, 0, 0}},
		{10, Weights{0.2, 0, 0.2, 0}},
		{25, Weights{1, 0, 1, 0}},
		{40, Weights{0.2, 0, 0.2, 0}},
		{50, Weights{0, 0, 0, 0}},
		{60, Weights{0, 0.2, 0, 0.2}},
		{75, Weights{0, 1, 0, 1}},
		{90, Weights{0, 0.2, 0, 0.2}},
		{100, Weights{0, 0, 0, 0}},
	}}
}
