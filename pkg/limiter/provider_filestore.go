package limiter

import (
	"context"

	"github.com/adrianliechti/docparse/pkg/upload"

	"golang.org/x/time/rate"
)

type FileStore interface {
	Limiter
	upload.Store
	upload.Deleter
}

type limitedFileStore struct {
	limiter  *rate.Limiter
	provider upload.Store
}

// NewFileStore limits every remote call of p, including readiness polls.
func NewFileStore(l *rate.Limiter, p upload.Store) FileStore {
	return &limitedFileStore{
		limiter:  l,
		provider: p,
	}
}

func (p *limitedFileStore) limiterSetup() {
}

func (p *limitedFileStore) wait(ctx context.Context) error {
	if p.limiter == nil {
		return nil
	}

	return p.limiter.Wait(ctx)
}

func (p *limitedFileStore) Upload(ctx context.Context, path string, options *upload.UploadOptions) (*upload.Handle, error) {
	if err := p.wait(ctx); err != nil {
		return nil, err
	}

	return p.provider.Upload(ctx, path, options)
}

func (p *limitedFileStore) State(ctx context.Context, handle *upload.Handle) (upload.State, error) {
	if err := p.wait(ctx); err != nil {
		return upload.StateUnknown, err
	}

	return p.provider.State(ctx, handle)
}

func (p *limitedFileStore) Delete(ctx context.Context, handle *upload.Handle) error {
	d, ok := p.provider.(upload.Deleter)

	if !ok {
		return nil
	}

	if err := p.wait(ctx); err != nil {
		return err
	}

	return d.Delete(ctx, handle)
}
