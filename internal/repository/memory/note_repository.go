package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"rich-notes-be/internal/entity"
	"rich-notes-be/internal/repository/contract"
	"rich-notes-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// NoteRepository keeps notes in a process-local cache. Notes never expire;
// deleted notes are removed outright.
type NoteRepository struct {
	cache *cache.Cache
}

func NewNoteRepository() *NoteRepository {
	return &NoteRepository{
		cache: cache.New(cache.NoExpiration, 0),
	}
}

var _ contract.NoteRepository = (*NoteRepository)(nil)

func (r *NoteRepository) Create(ctx context.Context, note *entity.Note) error {
	if note.Id == uuid.Nil {
		note.Id = uuid.New()
	}
	if note.CreatedAt.IsZero() {
		note.CreatedAt = time.Now()
	}
	stored := *note
	if err := r.cache.Add(note.Id.String(), &stored, cache.NoExpiration); err != nil {
		return fmt.Errorf("create note %s: %w", note.Id, err)
	}
	return nil
}

func (r *NoteRepository) Update(ctx context.Context, note *entity.Note) error {
	key := note.Id.String()
	x, found := r.cache.Get(key)
	if !found {
		return contract.ErrNoteNotFound
	}
	existing := x.(*entity.Note)

	now := time.Now()
	stored := *existing
	stored.Title = note.Title
	stored.Content = note.Content
	stored.UpdatedAt = &now
	if err := r.cache.Replace(key, &stored, cache.NoExpiration); err != nil {
		return contract.ErrNoteNotFound
	}
	*note = stored
	return nil
}

func (r *NoteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	key := id.String()
	if _, found := r.cache.Get(key); !found {
		return contract.ErrNoteNotFound
	}
	r.cache.Delete(key)
	return nil
}

func (r *NoteRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Note, error) {
	notes, err := r.FindAll(ctx, specs...)
	if err != nil || len(notes) == 0 {
		return nil, err
	}
	return notes[0], nil
}

func (r *NoteRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Note, error) {
	var (
		matchers []specification.NoteMatcher
		sorters  []specification.NoteSorter
	)
	for _, spec := range specs {
		matched := false
		if m, ok := spec.(specification.NoteMatcher); ok {
			matchers = append(matchers, m)
			matched = true
		}
		if s, ok := spec.(specification.NoteSorter); ok {
			sorters = append(sorters, s)
			matched = true
		}
		if !matched {
			return nil, fmt.Errorf("specification %T is not supported by the memory store", spec)
		}
	}

	var out []*entity.Note
	for _, item := range r.cache.Items() {
		n := *item.Object.(*entity.Note)
		if matchesAll(&n, matchers) {
			out = append(out, &n)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		for _, s := range sorters {
			if s.LessNote(out[i], out[j]) {
				return true
			}
			if s.LessNote(out[j], out[i]) {
				return false
			}
		}
		return out[i].Id.String() < out[j].Id.String()
	})
	return out, nil
}

func matchesAll(n *entity.Note, matchers []specification.NoteMatcher) bool {
	for _, m := range matchers {
		if !m.MatchNote(n) {
			return false
		}
	}
	return true
}
