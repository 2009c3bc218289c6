package domain

import "fmt"

const (
	runCalorieSpeedMultiplier = 18
	runCalorieSpeedShift      = 20

	walkCalorieWeightMultiplier = 0.035
	walkCalorieSpeedMultiplier  = 0.029

	swimCalorieSpeedShift = 1.1
	swimCalorieMultiplier = 2
)

// Training type labels reported in InfoMessage.
const (
	TrainingRunning       = "Running"
	TrainingSportsWalking = "SportsWalking"
	TrainingSwimming      = "Swimming"
)

// Workout computes derived metrics for one recorded training session.
type Workout interface {
	Distance() float64
	MeanSpeed() float64
	SpentCalories() float64
	TrainingInfo() InfoMessage
}

// Running is a run measured in steps.
type Running struct {
	Training
}

// NewRunning constructs a Running workout.
func NewRunning(action int, duration, weight float64) (Running, error) {
	t, err := newTraining(action, duration, weight)
	if err != nil {
		return Running{}, err
	}
	r := Running{Training: t}
	if err := checkFinite(r); err != nil {
		return Running{}, err
	}
	return r, nil
}

func (r Running) Distance() float64 { return r.distance(LenStep) }

func (r Running) MeanSpeed() float64 { return r.Distance() / r.duration }

func (r Running) SpentCalories() float64 {
	return (runCalorieSpeedMultiplier*r.MeanSpeed() - runCalorieSpeedShift) *
		r.weight / MInKm * r.duration * MinInHour
}

func (r Running) TrainingInfo() InfoMessage {
	return newInfoMessage(TrainingRunning, r, r.duration)
}

// SportsWalking is a walk measured in steps; the calorie formula also depends on height.
type SportsWalking struct {
	Training
	height float64
}

// NewSportsWalking constructs a SportsWalking workout. height is in centimetres.
func NewSportsWalking(action int, duration, weight, height float64) (SportsWalking, error) {
	t, err := newTraining(action, duration, weight)
	if err != nil {
		return SportsWalking{}, err
	}
	if !(height > 0) {
		return SportsWalking{}, fmt.Errorf("%w: got %v", ErrInvalidHeight, height)
	}
	w := SportsWalking{Training: t, height: height}
	if err := checkFinite(w); err != nil {
		return SportsWalking{}, err
	}
	return w, nil
}

// Height is the walker's height in centimetres.
func (w SportsWalking) Height() float64 { return w.height }

func (w SportsWalking) Distance() float64 { return w.distance(LenStep) }

func (w SportsWalking) MeanSpeed() float64 { return w.Distance() / w.duration }

// SpentCalories floors speed²/height before applying the coefficient. The truncation is part
// of the reference formula and must not be replaced with real division.
func (w SportsWalking) SpentCalories() float64 {
	speed := w.MeanSpeed()
	return (walkCalorieWeightMultiplier*w.weight +
		floorDiv(speed*speed, w.height)*walkCalorieSpeedMultiplier*w.weight) *
		w.duration * MinInHour
}

func (w SportsWalking) TrainingInfo() InfoMessage {
	return newInfoMessage(TrainingSportsWalking, w, w.duration)
}

// Swimming is a pool swim. Distance counts strokes, but speed is derived from pool geometry.
type Swimming struct {
	Training
	lengthPool float64
	countPool  int
}

// NewSwimming constructs a Swimming workout. lengthPool is in metres.
func NewSwimming(action int, duration, weight, lengthPool float64, countPool int) (Swimming, error) {
	t, err := newTraining(action, duration, weight)
	if err != nil {
		return Swimming{}, err
	}
	s := Swimming{Training: t, lengthPool: lengthPool, countPool: countPool}
	if err := checkFinite(s); err != nil {
		return Swimming{}, err
	}
	return s, nil
}

// LengthPool is the pool length in metres.
func (s Swimming) LengthPool() float64 { return s.lengthPool }

// CountPool is how many pool lengths were swum.
func (s Swimming) CountPool() int { return s.countPool }

func (s Swimming) Distance() float64 { return s.distance(SwimLenStep) }

func (s Swimming) MeanSpeed() float64 {
	return s.lengthPool * float64(s.countPool) / MInKm / s.duration
}

func (s Swimming) SpentCalories() float64 {
	return (s.MeanSpeed() + swimCalorieSpeedShift) * swimCalorieMultiplier * s.weight
}

func (s Swimming) TrainingInfo() InfoMessage {
	return newInfoMessage(TrainingSwimming, s, s.duration)
}
