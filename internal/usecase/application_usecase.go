package usecase

import (
	"context"
	"time"

	"github.com/fadilmartias/jobtrack/internal/cache"
	"github.com/fadilmartias/jobtrack/internal/client"
	"github.com/fadilmartias/jobtrack/internal/model"
	"github.com/fadilmartias/jobtrack/internal/notifier"
)

// ApplicationUsecase is the dashboard's data layer: reads go through the
// query cache, mutations go upstream and on success invalidate the cache
// and notify the user. A failed mutation leaves every cached snapshot
// exactly as it was.
type ApplicationUsecase struct {
	client   client.ApplicationClientInterface
	cache    *cache.Cache
	notifier notifier.Notifier
	ttl      time.Duration
}

func NewApplicationUsecase(c client.ApplicationClientInterface, cch *cache.Cache, n notifier.Notifier, ttl time.Duration) *ApplicationUsecase {
	return &ApplicationUsecase{client: c, cache: cch, notifier: n, ttl: ttl}
}

// All returns the complete unfiltered collection, cached for the configured
// staleness window so dashboard and analytics views share one stable
// snapshot instead of re-walking every page per request.
func (uc *ApplicationUsecase) All(ctx context.Context) ([]model.Application, error) {
	v, err := uc.cache.Get(ctx, cache.AllKey, uc.ttl, func(ctx context.Context) (any, error) {
		return uc.client.FetchAll(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.([]model.Application), nil
}

// List returns one filtered page. Filtered keys are always stale — the list
// view needs freshness after every keystroke — but identical concurrent
// reads still collapse into a single upstream call.
func (uc *ApplicationUsecase) List(ctx context.Context, params client.ListParams) (*client.Page, error) {
	key := cache.ListKey(params.Status, params.Search, params.Page)
	v, err := uc.cache.Get(ctx, key, 0, func(ctx context.Context) (any, error) {
		return uc.client.List(ctx, params)
	})
	if err != nil {
		return nil, err
	}
	return v.(*client.Page), nil
}

func (uc *ApplicationUsecase) Get(ctx context.Context, id string) (*model.Application, error) {
	v, err := uc.cache.Get(ctx, cache.RecordKey(id), uc.ttl, func(ctx context.Context) (any, error) {
		return uc.client.Get(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return v.(*model.Application), nil
}

func (uc *ApplicationUsecase) Create(ctx context.Context, app *model.Application) (*model.Application, error) {
	created, err := uc.client.Create(ctx, app)
	if err != nil {
		uc.notifier.Error(client.Message(err, "Failed to create application"))
		return nil, err
	}
	uc.cache.InvalidateApplications()
	uc.notifier.Success("Application created successfully!")
	return created, nil
}

func (uc *ApplicationUsecase) Update(ctx context.Context, id string, app *model.Application) (*model.Application, error) {
	updated, err := uc.client.Update(ctx, id, app)
	if err != nil {
		uc.notifier.Error(client.Message(err, "Failed to update application"))
		return nil, err
	}
	uc.cache.InvalidateApplications()
	uc.cache.InvalidateRecord(id)
	uc.notifier.Success("Application updated successfully!")
	return updated, nil
}

// UpdateStatus patches only the nested status field.
func (uc *ApplicationUsecase) UpdateStatus(ctx context.Context, id string, status string) (*model.Application, error) {
	updated, err := uc.client.PatchStatus(ctx, id, status)
	if err != nil {
		uc.notifier.Error(client.Message(err, "Failed to update status"))
		return nil, err
	}
	uc.cache.InvalidateApplications()
	uc.cache.InvalidateRecord(id)
	uc.notifier.Success("Status updated successfully!")
	return updated, nil
}

func (uc *ApplicationUsecase) Delete(ctx context.Context, id string) error {
	if err := uc.client.Delete(ctx, id); err != nil {
		uc.notifier.Error(client.Message(err, "Failed to delete application"))
		return err
	}
	uc.cache.InvalidateApplications()
	uc.cache.InvalidateRecord(id)
	uc.notifier.Success("Application deleted successfully!")
	return nil
}

func (uc *ApplicationUsecase) AddTimelineEvent(ctx context.Context, id string, event model.TimelineEvent) (*model.Application, error) {
	updated, err := uc.client.AddTimelineEvent(ctx, id, event)
	if err != nil {
		uc.notifier.Error(client.Message(err, "Failed to add timeline event"))
		return nil, err
	}
	uc.cache.InvalidateApplications()
	uc.cache.InvalidateRecord(id)
	uc.notifier.Success("Timeline event added successfully!")
	return updated, nil
}
