package routing

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/passbi/railnet/internal/graph"
	"github.com/passbi/railnet/internal/models"
)

// PositionEstimator estimates where trains are between their stops
type PositionEstimator struct {
	net *graph.Network
}

// NewPositionEstimator creates a new estimator
func NewPositionEstimator(net *graph.Network) *PositionEstimator {
	return &PositionEstimator{net: net}
}

// EstimatePosition estimates the location of a train at time t by linear
// interpolation between the two stops around t. It returns false if the
// train is unknown, is not running at t, or runs through a removed station.
func (e *PositionEstimator) EstimatePosition(id models.TrainID, t models.Time) (orb.Point, bool) {
	from, to, progress, ok := e.segmentAt(id, t)
	if !ok {
		return orb.Point{}, false
	}
	start, ok := e.coord(from.Station)
	if !ok {
		return orb.Point{}, false
	}
	end, ok := e.coord(to.Station)
	if !ok {
		return orb.Point{}, false
	}
	return linearInterpolate(start, end, progress), true
}

// DistanceAlongTrain returns the distance a train has covered at time t,
// counting only the finished part of the current hop. It returns false under
// the same conditions as EstimatePosition.
func (e *PositionEstimator) DistanceAlongTrain(id models.TrainID, t models.Time) (float64, bool) {
	train, ok := e.net.Train(id)
	if !ok || len(train.Stops) == 0 || t < train.Stops[0].Time || t > train.Stops[len(train.Stops)-1].Time {
		return 0, false
	}

	covered := 0.0
	for i := 0; i+1 < len(train.Stops); i++ {
		from, to := train.Stops[i], train.Stops[i+1]
		start, ok := e.coord(from.Station)
		if !ok {
			return 0, false
		}
		end, ok := e.coord(to.Station)
		if !ok {
			return 0, false
		}
		length := planar.Distance(start, end)

		if t >= to.Time {
			covered += length
			continue
		}
		covered += length * EstimateProgress(t.Minutes()-from.Time.Minutes(), to.Time.Minutes()-from.Time.Minutes())
		break
	}
	return covered, true
}

// EstimateProgress calculates the progress along a hop as a fraction of
// elapsed over total minutes
func EstimateProgress(elapsed, total int) float64 {
	if total <= 0 {
		return 1
	}

	progress := float64(elapsed) / float64(total)

	// Clamp to [0, 1]
	return math.Max(0, math.Min(1, progress))
}

// segmentAt finds the stops a train is between at time t and the fraction
// of that hop already done
func (e *PositionEstimator) segmentAt(id models.TrainID, t models.Time) (models.Stop, models.Stop, float64, bool) {
	train, ok := e.net.Train(id)
	if !ok || len(train.Stops) == 0 {
		return models.Stop{}, models.Stop{}, 0, false
	}

	first := train.Stops[0]
	if t < first.Time || t > train.Stops[len(train.Stops)-1].Time {
		return models.Stop{}, models.Stop{}, 0, false
	}
	if len(train.Stops) == 1 {
		return first, first, 0, true
	}

	for i := 0; i+1 < len(train.Stops); i++ {
		from, to := train.Stops[i], train.Stops[i+1]
		if t <= to.Time {
			return from, to, EstimateProgress(t.Minutes()-from.Time.Minutes(), to.Time.Minutes()-from.Time.Minutes()), true
		}
	}
	last := train.Stops[len(train.Stops)-1]
	return last, last, 0, true
}

func (e *PositionEstimator) coord(id models.StationID) (orb.Point, bool) {
	if !e.net.HasStation(id) {
		return orb.Point{}, false
	}
	return graph.Point(e.net.StationCoord(id)), true
}

// linearInterpolate performs simple linear interpolation between two points
func linearInterpolate(start, end orb.Point, progress float64) orb.Point {
	return orb.Point{
		start[0] + (end[0]-start[0])*progress,
		start[1] + (end[1]-start[1])*progress,
	}
}
