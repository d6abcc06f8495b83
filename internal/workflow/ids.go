package workflow

import "github.com/google/uuid"

func newRunID() string {
	return "run_" + uuid.NewString()
}
