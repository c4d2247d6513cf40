package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kasuganosora/memorybox/hook"
	"github.com/kasuganosora/memorybox/imaging"
	"github.com/kasuganosora/memorybox/model"
	"go.uber.org/zap"
)

// Draft is the user-editable part of an item. The service fills in id,
// createdAt and tags.
type Draft struct {
	Name        string         `json:"name"`
	Location    string         `json:"location"`
	Category    model.Category `json:"category"`
	Notes       string         `json:"notes"`
	Image       string         `json:"image"`
	SecretCode  string         `json:"secretCode"`
	IsTrackable *bool          `json:"isTrackable"`
}

// Service is the only path by which items are created or edited.
type Service struct {
	store  Store
	hooks  *hook.Center
	logger *zap.Logger
	now    func() time.Time
	newID  func() string

	maxImageWidth int
}

// Option customises a Service.
type Option func(*Service)

// WithClock overrides the creation timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithMaxImageWidth sets the widest image a draft may carry. It should match
// the width the image normalizer produces.
func WithMaxImageWidth(px int) Option {
	return func(s *Service) {
		if px > 0 {
			s.maxImageWidth = px
		}
	}
}

// WithIDGenerator overrides id assignment.
func WithIDGenerator(gen func() string) Option {
	return func(s *Service) { s.newID = gen }
}

// NewService creates a Service. hooks may be nil.
func NewService(store Store, hooks *hook.Center, logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		store:  store,
		hooks:  hooks,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,

		maxImageWidth: imaging.DefaultMaxWidth,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Store exposes the underlying collection for read-only views.
func (s *Service) Store() Store { return s.store }

// validate rejects drafts without a name or without an image that decodes
// and fits the normalized width.
func (d Draft) validate(maxImageWidth int) error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidItem)
	}
	if d.Image == "" {
		return fmt.Errorf("%w: image is required", ErrInvalidItem)
	}
	if err := imaging.CheckStored(d.Image, maxImageWidth); err != nil {
		return fmt.Errorf("%w: image: %v", ErrInvalidItem, err)
	}
	if d.Category != "" && !d.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidItem, d.Category)
	}
	return nil
}

func (d Draft) apply(item *model.InventoryItem) {
	cat := d.Category
	if cat == "" {
		cat = model.CategoryMisc
	}
	trackable := true
	if d.IsTrackable != nil {
		trackable = *d.IsTrackable
	}
	item.Name = strings.TrimSpace(d.Name)
	item.Location = d.Location
	item.Category = cat
	item.Notes = d.Notes
	item.Image = d.Image
	item.SecretCode = d.SecretCode
	item.Tags = model.TagsFor(cat)
	item.IsTrackable = model.Bool(trackable)
}

func (s *Service) before(ctx context.Context, event string, item model.InventoryItem) (model.InventoryItem, error) {
	ev := &hook.Event{Name: event, Item: item}
	err := s.hooks.Trigger(ctx, ev)
	if errors.Is(err, hook.ErrInterrupt) {
		return item, fmt.Errorf("%w: %s", ErrVetoed, event)
	}
	if err != nil {
		s.logger.Warn("hook failed", zap.String("event", event), zap.Error(err))
	}
	return ev.Item, nil
}

func (s *Service) after(ctx context.Context, ev *hook.Event) {
	if err := s.hooks.Trigger(ctx, ev); err != nil {
		s.logger.Warn("hook failed", zap.String("event", ev.Name), zap.Error(err))
	}
}

// Add validates d and stores a new item at the front of the collection.
// On a storage failure the built item is still returned alongside the error
// so the caller can keep it.
func (s *Service) Add(ctx context.Context, d Draft) (model.InventoryItem, error) {
	if err := d.validate(s.maxImageWidth); err != nil {
		return model.InventoryItem{}, err
	}
	item := model.InventoryItem{
		ID:        s.newID(),
		CreatedAt: s.now().UnixMilli(),
	}
	d.apply(&item)

	item, err := s.before(ctx, hook.BeforeItemCreate, item)
	if err != nil {
		return item, err
	}
	if err := s.store.Create(ctx, item); err != nil {
		return item, err
	}
	s.logger.Debug("item created", zap.String("id", item.ID), zap.String("name", item.Name))
	s.after(ctx, &hook.Event{Name: hook.AfterItemCreate, Item: item})
	return item, nil
}

// Edit replaces the editable fields of item id with d. Id and createdAt are
// kept; tags are derived again from the category.
func (s *Service) Edit(ctx context.Context, id string, d Draft) (model.InventoryItem, error) {
	if err := d.validate(s.maxImageWidth); err != nil {
		return model.InventoryItem{}, err
	}
	item, err := s.store.Get(ctx, id)
	if err != nil {
		return model.InventoryItem{}, err
	}
	d.apply(&item)

	item, err = s.before(ctx, hook.BeforeItemUpdate, item)
	if err != nil {
		return item, err
	}
	if err := s.store.Update(ctx, item); err != nil {
		return item, err
	}
	s.after(ctx, &hook.Event{Name: hook.AfterItemUpdate, Item: item})
	return item, nil
}

// Get returns one item.
func (s *Service) Get(ctx context.Context, id string) (model.InventoryItem, error) {
	return s.store.Get(ctx, id)
}

// List returns the whole collection.
func (s *Service) List(ctx context.Context) ([]model.InventoryItem, error) {
	return s.store.ListAll(ctx)
}

// Remove deletes id. Removing an unknown id succeeds and fires no hook.
func (s *Service) Remove(ctx context.Context, id string) error {
	item, err := s.store.Get(ctx, id)
	if errors.Is(err, ErrItemNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.after(ctx, &hook.Event{Name: hook.AfterItemDelete, Item: item})
	return nil
}
