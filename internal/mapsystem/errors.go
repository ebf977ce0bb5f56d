package mapsystem

import "github.com/Hemifuture/terragen/internal/apperr"

func missingPrerequisite(stage Stage) error {
	return apperr.MissingPrerequisite(stage.String())
}
