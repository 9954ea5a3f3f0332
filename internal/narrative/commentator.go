package narrative

import (
	"context"

	"github.com/volquant/crypto-vol-agent/pkg/types"
)

// Commentator turns a completed risk report into prose commentary. It is a
// decorator over the numeric results: the report is already final when a
// commentator sees it, and a failing or absent commentator never changes it.
type Commentator interface {
	Comment(ctx context.Context, report types.RiskReport) (string, error)
}

// Disabled is the default commentator; it produces no commentary.
type Disabled struct{}

// Comment returns an empty commentary.
func (Disabled) Comment(ctx context.Context, report types.RiskReport) (string, error) {
	return "", nil
}
