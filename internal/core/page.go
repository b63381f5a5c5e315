package core

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"
)

var (
	// ErrNotFound is returned when an identifier is not in the loaded collection.
	ErrNotFound = errors.New("entity not found in loaded collection")

	// ErrNotConfirmed is returned by Delete without interactive confirmation.
	ErrNotConfirmed = errors.New("delete not confirmed")

	// ErrDeleteNotAllowed is returned by Delete for entities that are not active.
	ErrDeleteNotAllowed = errors.New("only active entities can be deleted")

	// ErrModalClosed is returned by Submit when no modal is open.
	ErrModalClosed = errors.New("no form is open")

	// ErrSubmitting is returned by Submit while a previous submission is in flight.
	ErrSubmitting = errors.New("a submission is already in progress")
)

// Service is the slice of an entity REST client a Page needs.
type Service[T any, R any] interface {
	List(ctx context.Context, soloActivas bool) ([]T, error)
	Create(ctx context.Context, req R) (T, error)
	Update(ctx context.Context, id int64, req R) (T, error)
	Delete(ctx context.Context, id int64) error
}

// Notifier receives user-facing outcome messages.
type Notifier interface {
	Success(message string) string
	Error(message string) string
}

type noopNotifier struct{}

func (noopNotifier) Success(string) string { return "" }
func (noopNotifier) Error(string) string   { return "" }

// Binding describes an entity type to the generic Page.
type Binding[T any, R any] struct {
	Singular string // "facultad"
	Plural   string // "facultades"

	ID     func(T) int64
	Name   func(T) string
	Active func(T) bool

	Fields []string // every form input, in display order
	Flags  []string // checkbox inputs; absent means "false"

	Form     Schema
	Defaults func() Values
	Values   func(T) Values
	Decode   func(Values) (R, error)
}

// Mode is the purpose of the open modal.
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

func (m Mode) String() string {
	if m == ModeEdit {
		return "edit"
	}
	return "create"
}

// Modal is the create/edit form state.
type Modal[T any] struct {
	Open       bool
	Mode       Mode
	EditingID  int64
	Editing    *T
	Values     Values
	Validation ValidationResult
}

// State is a point-in-time copy of a page, safe to render.
type State[T any] struct {
	Items      []T
	Filtered   []T
	Criteria   Criteria[T]
	Loaded     bool
	Loading    bool
	Submitting bool
	Error      string
	Modal      Modal[T]
}

// Page is the list/filter/edit workflow for one entity type. It is safe
// for concurrent use; the lock is never held across API calls.
type Page[T any, R any] struct {
	binding  Binding[T, R]
	svc      Service[T, R]
	notifier Notifier

	mu       sync.Mutex
	state    State[T]
	issued   uint64 // sequence of the most recent load
	modalGen uint64
}

// NewPage creates a page over svc. A nil notifier discards messages.
func NewPage[T any, R any](svc Service[T, R], binding Binding[T, R], notifier Notifier) *Page[T, R] {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	return &Page[T, R]{
		binding:  binding,
		svc:      svc,
		notifier: notifier,
	}
}

// Binding returns the entity binding of the page.
func (p *Page[T, R]) Binding() Binding[T, R] { return p.binding }

// Load fetches the full collection and re-derives the filtered view. On
// failure the previous collection is kept and the page error is set. The
// result of a load superseded by a newer one is discarded.
func (p *Page[T, R]) Load(ctx context.Context) error {
	p.mu.Lock()
	p.issued++
	seq := p.issued
	p.state.Loading = true
	p.state.Error = ""
	p.mu.Unlock()

	items, err := p.svc.List(context.WithoutCancel(ctx), false)

	p.mu.Lock()
	if seq != p.issued {
		p.mu.Unlock()
		return nil
	}
	p.state.Loading = false

	if err != nil {
		msg := fmt.Sprintf("Error al cargar las %s: %s", p.binding.Plural, DisplayMessage(err))
		p.state.Error = msg
		p.mu.Unlock()
		p.notifier.Error(msg)
		return fmt.Errorf("load %s: %w", p.binding.Plural, err)
	}

	p.state.Items = items
	p.state.Loaded = true
	p.refilterLocked()
	p.mu.Unlock()
	return nil
}

// SetFilter replaces the criteria and re-derives the filtered view.
func (p *Page[T, R]) SetFilter(c Criteria[T]) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.Criteria = c
	p.refilterLocked()
}

// Loaded reports whether a load has ever succeeded.
func (p *Page[T, R]) Loaded() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.Loaded
}

// Criteria returns the current filter criteria, or nil.
func (p *Page[T, R]) Criteria() Criteria[T] {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.Criteria
}

func (p *Page[T, R]) refilterLocked() {
	p.state.Filtered = Apply(p.state.Items, p.state.Criteria)
}

// Find returns the loaded entity with the given identifier.
func (p *Page[T, R]) Find(id int64) (T, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.findLocked(id)
}

func (p *Page[T, R]) findLocked(id int64) (T, bool) {
	idx := slices.IndexFunc(p.state.Items, func(item T) bool { return p.binding.ID(item) == id })
	if idx < 0 {
		var zero T
		return zero, false
	}
	return p.state.Items[idx], true
}

// OpenCreate opens the modal with default values.
func (p *Page[T, R]) OpenCreate() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.modalGen++
	p.state.Modal = Modal[T]{
		Open:   true,
		Mode:   ModeCreate,
		Values: p.binding.Defaults(),
	}
}

// OpenEdit opens the modal pre-filled with the entity's current values.
func (p *Page[T, R]) OpenEdit(id int64) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	item, ok := p.findLocked(id)
	if !ok {
		return fmt.Errorf("edit %s %d: %w", p.binding.Singular, id, ErrNotFound)
	}

	p.modalGen++
	p.state.Modal = Modal[T]{
		Open:      true,
		Mode:      ModeEdit,
		EditingID: id,
		Editing:   &item,
		Values:    p.binding.Values(item),
	}
	return nil
}

// CloseModal closes the modal and resets the form.
func (p *Page[T, R]) CloseModal() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closeModalLocked()
}

func (p *Page[T, R]) closeModalLocked() {
	p.modalGen++
	p.state.Modal = Modal[T]{}
}

// Submit validates values and creates or updates according to the modal
// mode. Invalid values return an error wrapping ErrInvalidForm without any
// API call. On success the modal closes and the collection is reloaded; on
// failure the modal stays open with the entered values.
func (p *Page[T, R]) Submit(ctx context.Context, values Values) error {
	p.mu.Lock()
	if !p.state.Modal.Open {
		p.mu.Unlock()
		return ErrModalClosed
	}
	if p.state.Submitting {
		p.mu.Unlock()
		return ErrSubmitting
	}

	p.state.Modal.Values = values.Clone()
	result := p.binding.Form.Validate(values)
	p.state.Modal.Validation = result
	if !result.Valid {
		p.mu.Unlock()
		return result.Err()
	}

	req, err := p.binding.Decode(values)
	if err != nil {
		p.state.Modal.Validation = ValidationResult{Errors: []ValidationError{{Message: err.Error()}}}
		p.mu.Unlock()
		return fmt.Errorf("%w: %w", ErrInvalidForm, err)
	}

	mode, id, gen := p.state.Modal.Mode, p.state.Modal.EditingID, p.modalGen
	p.state.Submitting = true
	p.mu.Unlock()

	callCtx := context.WithoutCancel(ctx)
	if mode == ModeEdit {
		_, err = p.svc.Update(callCtx, id, req)
	} else {
		_, err = p.svc.Create(callCtx, req)
	}

	p.mu.Lock()
	p.state.Submitting = false
	if err != nil {
		msg := "Error al guardar: " + DisplayMessage(err)
		p.state.Error = msg
		p.mu.Unlock()
		p.notifier.Error(msg)
		return fmt.Errorf("save %s: %w", p.binding.Singular, err)
	}
	if gen == p.modalGen {
		p.closeModalLocked()
	}
	p.mu.Unlock()

	verb := "creada"
	if mode == ModeEdit {
		verb = "actualizada"
	}
	p.notifier.Success(fmt.Sprintf("%s %s correctamente", capitalize(p.binding.Singular), verb))

	// A failed reload is recorded in the page error; the save itself succeeded.
	_ = p.Load(ctx)
	return nil
}

// CanDelete reports whether item may be offered for deletion.
func (p *Page[T, R]) CanDelete(item T) bool {
	return p.binding.Active(item)
}

// ConfirmationPrompt is the question shown before deleting item.
func (p *Page[T, R]) ConfirmationPrompt(item T) string {
	return fmt.Sprintf("¿Estás seguro de que deseas eliminar la %s %q?", p.binding.Singular, p.binding.Name(item))
}

// Delete removes the entity after interactive confirmation. Only active
// entities can be deleted from this client. On success the collection is
// reloaded.
func (p *Page[T, R]) Delete(ctx context.Context, id int64, confirmed bool) error {
	if !confirmed {
		return ErrNotConfirmed
	}

	item, ok := p.Find(id)
	if !ok {
		return fmt.Errorf("delete %s %d: %w", p.binding.Singular, id, ErrNotFound)
	}
	if !p.CanDelete(item) {
		return fmt.Errorf("delete %s %d: %w", p.binding.Singular, id, ErrDeleteNotAllowed)
	}

	if err := p.svc.Delete(context.WithoutCancel(ctx), id); err != nil {
		msg := "Error al eliminar: " + DisplayMessage(err)
		p.mu.Lock()
		p.state.Error = msg
		p.mu.Unlock()
		p.notifier.Error(msg)
		return fmt.Errorf("delete %s %d: %w", p.binding.Singular, id, err)
	}

	p.notifier.Success(fmt.Sprintf("%s eliminada correctamente", capitalize(p.binding.Singular)))
	_ = p.Load(ctx)
	return nil
}

// DismissError clears the page error.
func (p *Page[T, R]) DismissError() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.Error = ""
}

// Snapshot returns a copy of the page state.
func (p *Page[T, R]) Snapshot() State[T] {
	p.mu.Lock()
	defer p.mu.Unlock()

	s := p.state
	s.Items = slices.Clone(p.state.Items)
	s.Filtered = slices.Clone(p.state.Filtered)
	s.Modal.Values = p.state.Modal.Values.Clone()
	s.Modal.Validation.Errors = slices.Clone(p.state.Modal.Validation.Errors)
	if p.state.Modal.Editing != nil {
		editing := *p.state.Modal.Editing
		s.Modal.Editing = &editing
	}
	return s
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
