package driving

import (
	"context"

	"github.com/custodia-labs/juris/internal/core/domain"
)

// CorpusProcessor turns corpus files into processed documents.
type CorpusProcessor interface {
	// ProcessAll scans folder and processes every file that is not yet processed.
	// A folder that cannot be opened fails with domain.ErrFolderUnavailable.
	// Per-file failures are counted in the report and never abort the run.
	ProcessAll(ctx context.Context, folder string, opts domain.ProcessOptions) (domain.ProcessingReport, error)

	// ProcessFile processes a single file through the same pipeline.
	// When force is false an already processed document is left untouched.
	ProcessFile(ctx context.Context, path string, force bool) (*domain.Document, error)
}
