package core

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/JonMunkholm/universidad/internal/apiclient"
)

type itemRequest struct {
	Name   string
	Active bool
}

type fakeService struct {
	mu       sync.Mutex
	items    []item
	listErr  error
	saveErr  error
	listHook func(call int) // runs outside the lock before List returns
	lists    int
	creates  []itemRequest
	updates  map[int64]itemRequest
	deletes  []int64
}

func (f *fakeService) List(_ context.Context, soloActivas bool) ([]item, error) {
	f.mu.Lock()
	f.lists++
	call := f.lists
	hook := f.listHook
	items, err := append([]item(nil), f.items...), f.listErr
	f.mu.Unlock()

	if soloActivas {
		return nil, errors.New("page must load the full collection")
	}
	if hook != nil {
		hook(call)
	}
	return items, err
}

func (f *fakeService) Create(_ context.Context, req itemRequest) (item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return item{}, f.saveErr
	}
	f.creates = append(f.creates, req)
	created := item{id: int64(len(f.items) + 1), name: req.Name, active: boolPtr(req.Active)}
	f.items = append(f.items, created)
	return created, nil
}

func (f *fakeService) Update(_ context.Context, id int64, req itemRequest) (item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return item{}, f.saveErr
	}
	if f.updates == nil {
		f.updates = make(map[int64]itemRequest)
	}
	f.updates[id] = req
	return item{id: id, name: req.Name}, nil
}

func (f *fakeService) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.deletes = append(f.deletes, id)
	return nil
}

func (f *fakeService) calls() (lists, creates, updates, deletes int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lists, len(f.creates), len(f.updates), len(f.deletes)
}

type recordingNotifier struct {
	mu      sync.Mutex
	success []string
	errors  []string
}

func (n *recordingNotifier) Success(msg string) string {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.success = append(n.success, msg)
	return ""
}

func (n *recordingNotifier) Error(msg string) string {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, msg)
	return ""
}

func itemBinding() Binding[item, itemRequest] {
	return Binding[item, itemRequest]{
		Singular: "facultad",
		Plural:   "facultades",
		ID:       func(i item) int64 { return i.id },
		Name:     func(i item) string { return i.name },
		Active:   func(i item) bool { return i.active != nil && *i.active },
		Form: Schema{
			Field("nombre", Required(), MaxLength(100)),
		},
		Defaults: func() Values { return Values{"nombre": "", "activo": "true"} },
		Values: func(i item) Values {
			return Values{
				"nombre": i.name,
				"activo": strconv.FormatBool(i.active != nil && *i.active),
			}
		},
		Decode: func(v Values) (itemRequest, error) {
			return itemRequest{Name: strings.TrimSpace(v.Get("nombre")), Active: v.Get("activo") == "true"}, nil
		},
	}
}

func newTestPage(t *testing.T, items ...item) (*Page[item, itemRequest], *fakeService, *recordingNotifier) {
	t.Helper()
	svc := &fakeService{items: items}
	n := &recordingNotifier{}
	p := NewPage[item, itemRequest](svc, itemBinding(), n)
	if err := p.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return p, svc, n
}

func TestPage_Load(t *testing.T) {
	p, _, _ := newTestPage(t,
		item{id: 1, name: "Engineering", active: boolPtr(true)},
		item{id: 2, name: "Arts", active: boolPtr(false)},
	)

	s := p.Snapshot()
	if !s.Loaded || s.Loading {
		t.Errorf("Loaded = %v, Loading = %v, want true, false", s.Loaded, s.Loading)
	}
	if len(s.Items) != 2 || len(s.Filtered) != 2 {
		t.Errorf("Items = %d, Filtered = %d, want 2, 2", len(s.Items), len(s.Filtered))
	}
}

func TestPage_LoadFailureKeepsData(t *testing.T) {
	p, svc, n := newTestPage(t, item{id: 1, name: "Engineering"})

	svc.mu.Lock()
	svc.listErr = &apiclient.Error{StatusCode: 500}
	svc.mu.Unlock()

	if err := p.Load(context.Background()); err == nil {
		t.Fatal("Load() error = nil, want failure")
	}

	s := p.Snapshot()
	if len(s.Items) != 1 {
		t.Errorf("Items = %d, want previous collection kept", len(s.Items))
	}
	if s.Loading {
		t.Error("Loading = true after failure")
	}
	if !strings.HasPrefix(s.Error, "Error al cargar las facultades: ") {
		t.Errorf("Error = %q", s.Error)
	}
	if len(n.errors) != 1 {
		t.Errorf("error notifications = %d, want 1", len(n.errors))
	}

	p.DismissError()
	if got := p.Snapshot().Error; got != "" {
		t.Errorf("Error after DismissError = %q", got)
	}
}

func TestPage_StaleLoadDiscarded(t *testing.T) {
	svc := &fakeService{items: []item{{id: 1, name: "old"}}}
	p := NewPage[item, itemRequest](svc, itemBinding(), nil)

	entered := make(chan struct{})
	release := make(chan struct{})
	svc.listHook = func(call int) {
		if call == 1 {
			close(entered)
			<-release
		}
	}

	done := make(chan error, 1)
	go func() { done <- p.Load(context.Background()) }()
	<-entered

	svc.mu.Lock()
	svc.items = []item{{id: 1, name: "new"}, {id: 2, name: "newer"}}
	svc.mu.Unlock()

	if err := p.Load(context.Background()); err != nil {
		t.Fatalf("second Load() error = %v", err)
	}
	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first Load() error = %v", err)
	}

	s := p.Snapshot()
	if len(s.Items) != 2 || s.Items[0].name != "new" {
		t.Errorf("Items = %v, want the newer load's result", s.Items)
	}
}

func TestPage_SetFilterDoesNotReload(t *testing.T) {
	p, svc, _ := newTestPage(t,
		item{id: 1, name: "Engineering", active: boolPtr(true)},
		item{id: 2, name: "Arts", active: boolPtr(false)},
	)

	p.SetFilter(CriteriaFunc[item](func(i item) bool { return i.active != nil && !*i.active }))

	s := p.Snapshot()
	if len(s.Filtered) != 1 || s.Filtered[0].name != "Arts" {
		t.Errorf("Filtered = %v, want [Arts]", s.Filtered)
	}
	if len(s.Items) != 2 {
		t.Errorf("Items = %d, want full collection kept", len(s.Items))
	}
	if lists, _, _, _ := svc.calls(); lists != 1 {
		t.Errorf("List calls = %d, want 1", lists)
	}

	p.SetFilter(nil)
	if got := len(p.Snapshot().Filtered); got != 2 {
		t.Errorf("Filtered after clearing = %d, want 2", got)
	}
}

func TestPage_OpenCreateAndEdit(t *testing.T) {
	p, _, _ := newTestPage(t, item{id: 7, name: "Arts", active: boolPtr(false)})

	if err := p.OpenEdit(7); err != nil {
		t.Fatalf("OpenEdit() error = %v", err)
	}
	m := p.Snapshot().Modal
	if !m.Open || m.Mode != ModeEdit || m.EditingID != 7 || m.Editing == nil {
		t.Fatalf("Modal = %+v, want edit of 7", m)
	}
	if m.Values.Get("nombre") != "Arts" || m.Values.Get("activo") != "false" {
		t.Errorf("Values = %v, want entity values", m.Values)
	}

	p.OpenCreate()
	m = p.Snapshot().Modal
	if m.Mode != ModeCreate || m.Editing != nil || m.EditingID != 0 {
		t.Errorf("Modal = %+v, want create", m)
	}
	if m.Values.Get("nombre") != "" || m.Values.Get("activo") != "true" {
		t.Errorf("Values = %v, want defaults", m.Values)
	}

	if err := p.OpenEdit(99); !errors.Is(err, ErrNotFound) {
		t.Errorf("OpenEdit(99) error = %v, want ErrNotFound", err)
	}

	p.CloseModal()
	if p.Snapshot().Modal.Open {
		t.Error("Modal still open after CloseModal")
	}
}

func TestPage_SubmitInvalidMakesNoCall(t *testing.T) {
	p, svc, _ := newTestPage(t)
	p.OpenCreate()

	err := p.Submit(context.Background(), Values{"nombre": "   ", "activo": "true"})
	if !errors.Is(err, ErrInvalidForm) {
		t.Fatalf("Submit() error = %v, want ErrInvalidForm", err)
	}

	if _, creates, updates, _ := svc.calls(); creates+updates != 0 {
		t.Errorf("API mutations = %d, want 0", creates+updates)
	}
	m := p.Snapshot().Modal
	if !m.Open {
		t.Error("Modal closed after invalid submit")
	}
	if m.Validation.ErrorFor("nombre") == "" {
		t.Error("no validation message for nombre")
	}
}

func TestPage_SubmitCreateReloads(t *testing.T) {
	p, svc, n := newTestPage(t)
	p.OpenCreate()

	if err := p.Submit(context.Background(), Values{"nombre": "Ciencias", "activo": "true"}); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	lists, creates, _, _ := svc.calls()
	if creates != 1 {
		t.Errorf("Create calls = %d, want 1", creates)
	}
	if lists != 2 {
		t.Errorf("List calls = %d, want reload after create", lists)
	}

	s := p.Snapshot()
	if s.Modal.Open {
		t.Error("Modal open after successful submit")
	}
	if len(s.Items) != 1 || s.Items[0].name != "Ciencias" {
		t.Errorf("Items = %v, want reloaded collection", s.Items)
	}
	if len(n.success) != 1 || n.success[0] != "Facultad creada correctamente" {
		t.Errorf("success notifications = %v", n.success)
	}
}

func TestPage_SubmitEditUpdates(t *testing.T) {
	p, svc, n := newTestPage(t, item{id: 3, name: "Arts", active: boolPtr(true)})
	if err := p.OpenEdit(3); err != nil {
		t.Fatal(err)
	}

	if err := p.Submit(context.Background(), Values{"nombre": "Bellas Artes", "activo": "true"}); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	svc.mu.Lock()
	req, ok := svc.updates[3]
	svc.mu.Unlock()
	if !ok || req.Name != "Bellas Artes" {
		t.Errorf("Update(3) request = %+v, %v", req, ok)
	}
	if len(n.success) != 1 || n.success[0] != "Facultad actualizada correctamente" {
		t.Errorf("success notifications = %v", n.success)
	}
}

func TestPage_SubmitFailureKeepsModal(t *testing.T) {
	p, svc, n := newTestPage(t)
	svc.saveErr = &apiclient.Error{StatusCode: 409, Message: "Ya existe una facultad con el nombre: Ciencias"}
	p.OpenCreate()

	values := Values{"nombre": "Ciencias", "activo": "true"}
	if err := p.Submit(context.Background(), values); err == nil {
		t.Fatal("Submit() error = nil, want failure")
	}

	s := p.Snapshot()
	if !s.Modal.Open || s.Modal.Values.Get("nombre") != "Ciencias" {
		t.Errorf("Modal = %+v, want open with entered values", s.Modal)
	}
	if s.Error != "Error al guardar: Ya existe una facultad con el nombre: Ciencias" {
		t.Errorf("Error = %q", s.Error)
	}
	if s.Submitting {
		t.Error("Submitting = true after failure")
	}
	if len(n.errors) != 1 {
		t.Errorf("error notifications = %d, want 1", len(n.errors))
	}
}

func TestPage_SubmitWithoutModal(t *testing.T) {
	p, _, _ := newTestPage(t)
	if err := p.Submit(context.Background(), Values{"nombre": "x"}); !errors.Is(err, ErrModalClosed) {
		t.Errorf("Submit() error = %v, want ErrModalClosed", err)
	}
}

func TestPage_Delete(t *testing.T) {
	p, svc, n := newTestPage(t,
		item{id: 1, name: "Engineering", active: boolPtr(true)},
		item{id: 2, name: "Arts", active: boolPtr(false)},
		item{id: 3, name: "Legacy"},
	)

	if err := p.Delete(context.Background(), 1, false); !errors.Is(err, ErrNotConfirmed) {
		t.Errorf("Delete(unconfirmed) error = %v, want ErrNotConfirmed", err)
	}
	if err := p.Delete(context.Background(), 2, true); !errors.Is(err, ErrDeleteNotAllowed) {
		t.Errorf("Delete(inactive) error = %v, want ErrDeleteNotAllowed", err)
	}
	if err := p.Delete(context.Background(), 3, true); !errors.Is(err, ErrDeleteNotAllowed) {
		t.Errorf("Delete(absent flag) error = %v, want ErrDeleteNotAllowed", err)
	}
	if err := p.Delete(context.Background(), 42, true); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete(unknown) error = %v, want ErrNotFound", err)
	}
	if _, _, _, deletes := svc.calls(); deletes != 0 {
		t.Fatalf("Delete calls = %d, want 0 before a valid delete", deletes)
	}

	if err := p.Delete(context.Background(), 1, true); err != nil {
		t.Fatalf("Delete(1) error = %v", err)
	}
	lists, _, _, deletes := svc.calls()
	if deletes != 1 || lists != 2 {
		t.Errorf("deletes = %d, lists = %d, want 1, 2", deletes, lists)
	}
	if len(n.success) != 1 || n.success[0] != "Facultad eliminada correctamente" {
		t.Errorf("success notifications = %v", n.success)
	}
}

func TestPage_DeleteFailure(t *testing.T) {
	p, svc, _ := newTestPage(t, item{id: 1, name: "Engineering", active: boolPtr(true)})
	svc.saveErr = &apiclient.Error{StatusCode: 404}

	if err := p.Delete(context.Background(), 1, true); err == nil {
		t.Fatal("Delete() error = nil, want failure")
	}
	if got := p.Snapshot().Error; got != "Error al eliminar: El registro no existe" {
		t.Errorf("Error = %q", got)
	}
}

func TestPage_ConfirmationPrompt(t *testing.T) {
	p, _, _ := newTestPage(t)
	got := p.ConfirmationPrompt(item{name: "Ingeniería"})
	want := `¿Estás seguro de que deseas eliminar la facultad "Ingeniería"?`
	if got != want {
		t.Errorf("ConfirmationPrompt() = %q, want %q", got, want)
	}
}

func TestPage_SnapshotIsCopy(t *testing.T) {
	p, _, _ := newTestPage(t, item{id: 1, name: "Engineering"})
	s := p.Snapshot()
	s.Items[0].name = "mutated"
	if p.Snapshot().Items[0].name != "Engineering" {
		t.Error("Snapshot() aliases page state")
	}
}
