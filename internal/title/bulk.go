package title

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/hyperifyio/autotitle/internal/vault"
)

// bulkConcurrency keeps provider calls strictly one at a time, which avoids
// rate-limit bursts and keeps the status line about a single document.
const bulkConcurrency = 1

// GenerateTitles reads and titles each document in order. A failure is
// reported for its document and the batch continues. Outcomes are returned
// in input order.
func (g *Generator) GenerateTitles(ctx context.Context, docs []vault.Document) []Outcome {
	outcomes := make([]Outcome, len(docs))
	var eg errgroup.Group
	eg.SetLimit(bulkConcurrency)
	for i, doc := range docs {
		i, doc := i, doc
		eg.Go(func() error {
			outcomes[i] = g.processDocument(ctx, doc)
			return nil
		})
	}
	_ = eg.Wait()
	return outcomes
}

func (g *Generator) processDocument(ctx context.Context, doc vault.Document) Outcome {
	content, err := g.Vault.Read(ctx, doc)
	if err != nil {
		g.reportFailure(doc, "", err)
		return Outcome{Document: doc, Err: err}
	}
	return g.GenerateTitle(ctx, doc, content)
}
