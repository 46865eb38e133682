package curator

import (
	"context"
	"fmt"

	appcurator "github.com/komorebi/backend/internal/application/curator"
)

// StubGenerator returns a canned note without calling any external
// service. Used in development when no API key is configured.
type StubGenerator struct{}

// NewStubGenerator creates a new StubGenerator
func NewStubGenerator() *StubGenerator {
	return &StubGenerator{}
}

// GenerateNote returns a deterministic placeholder note
func (s *StubGenerator) GenerateNote(ctx context.Context, req appcurator.NoteRequest) (string, error) {
	return fmt.Sprintf(
		"%s, shaped from %s in %s. An object that asks nothing of you but attention.",
		req.Name, req.Material, req.Origin), nil
}

var _ appcurator.NoteGenerator = (*StubGenerator)(nil)
