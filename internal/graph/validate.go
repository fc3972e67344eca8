package graph

import (
	"github.com/go-playground/validator/v10"
	"github.com/passbi/railnet/internal/models"
)

type stationInput struct {
	ID    models.StationID `validate:"ne=---"`
	Name  models.Name      `validate:"ne=!NO_NAME!"`
	Coord models.Coord
}

type regionInput struct {
	ID   models.RegionID `validate:"ne=18446744073709551615"`
	Name models.Name     `validate:"ne=!NO_NAME!"`
}

type trainInput struct {
	ID models.TrainID `validate:"ne=---"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterStructValidation(func(sl validator.StructLevel) {
		in := sl.Current().Interface().(stationInput)
		if in.Coord == models.NoCoord {
			sl.ReportError(in.Coord, "Coord", "Coord", "coord", "")
		}
	}, stationInput{})
	return v
}

func validateStation(id models.StationID, name models.Name, coord models.Coord) error {
	return validate.Struct(stationInput{ID: id, Name: name, Coord: coord})
}

func validateRegion(id models.RegionID, name models.Name) error {
	return validate.Struct(regionInput{ID: id, Name: name})
}

func validateTrain(id models.TrainID) error {
	return validate.Struct(trainInput{ID: id})
}
