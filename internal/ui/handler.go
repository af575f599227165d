package ui

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"studentportal/internal/apiclient"
	"studentportal/internal/logger"
	"studentportal/internal/model"
	"studentportal/internal/view"
)

// Handler mounts one view per request and renders it.
type Handler struct {
	api      apiclient.StudentAPI
	registry *Registry
}

func NewHandler(api apiclient.StudentAPI, registry *Registry) *Handler {
	return &Handler{api: api, registry: registry}
}

// redirector is the per-request Navigator: the view decides where to go and
// the handler answers with a 303.
type redirector struct {
	to string
}

func (r *redirector) Navigate(path string) { r.to = path }

func (r *redirector) done(w http.ResponseWriter, req *http.Request) bool {
	if r.to == "" {
		return false
	}
	http.Redirect(w, req, r.to, http.StatusSeeOther)
	return true
}

// List renders the student list. A "view" query parameter re-renders the
// stored list view once after a delete or a cancelled confirmation; every
// other visit fetches again and replaces the stored view.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("view")
	v, ok := h.registry.Take(token)
	if !ok {
		if token != "" {
			h.registry.Remove(token)
		}
		v = view.NewListView(h.api)
		if err := v.Load(r.Context()); err != nil {
			return
		}
		if v.State() != view.StateReady {
			v.Dispose()
			render(w, "list", http.StatusOK, listPage{Title: "Students", State: v.State().String(), Error: v.ErrorText()})
			return
		}
		token = h.registry.Put(v)
	}

	alert := v.TakeAlert()
	if alert != "" {
		// Acknowledging the alert returns to these same rows.
		h.registry.MarkPending(token)
	}
	render(w, "list", http.StatusOK, listPage{
		Title: "Students",
		State: v.State().String(),
		Alert: alert,
		Token: token,
		Rows:  v.Rows(),
	})
}

// ConfirmDelete asks before deleting.
func (h *Handler) ConfirmDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	token := r.URL.Query().Get("view")
	h.registry.MarkPending(token)
	render(w, "confirm_delete", http.StatusOK, confirmPage{
		Title: "Delete Student",
		ID:    id,
		Token: token,
	})
}

// Delete removes one student from the list view it was requested from.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	token := r.PostForm.Get("view")
	v, ok := h.registry.Get(token)
	if !ok {
		// The page the user clicked on has expired; start from a fresh list.
		v = view.NewListView(h.api)
		if err := v.Load(r.Context()); err != nil {
			return
		}
		if v.State() != view.StateReady {
			v.Dispose()
			render(w, "list", http.StatusOK, listPage{Title: "Students", State: v.State().String(), Error: v.ErrorText()})
			return
		}
		token = h.registry.Put(v)
	}

	removed, err := v.Delete(r.Context(), id, r.PostForm.Get("confirm") == "yes")
	if err != nil {
		return
	}
	logger.Log.WithFields(logrus.Fields{"student": id, "removed": removed}).Info("Delete requested")
	h.registry.MarkPending(token)

	http.Redirect(w, r, "/?view="+token, http.StatusSeeOther)
}

// NewStudent shows an empty create form.
func (h *Handler) NewStudent(w http.ResponseWriter, r *http.Request) {
	f := view.NewCreateForm(h.api, &redirector{})
	defer f.Dispose()
	render(w, "form", http.StatusOK, createPage(f))
}

// CreateStudent handles the create form's submit and cancel buttons.
func (h *Handler) CreateStudent(w http.ResponseWriter, r *http.Request) {
	nav := &redirector{}
	f := view.NewCreateForm(h.api, nav)
	defer f.Dispose()

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if r.PostForm.Get("action") == "cancel" {
		f.Cancel()
		nav.done(w, r)
		return
	}

	for _, field := range model.Fields {
		if err := f.SetField(field.Name, r.PostForm.Get(field.Name)); err != nil {
			logger.Log.WithError(err).Error("Create form field mismatch")
		}
	}
	if err := f.Submit(r.Context()); err != nil {
		return
	}
	if nav.done(w, r) {
		return
	}
	render(w, "form", http.StatusOK, createPage(f))
}

// EditStudent loads the student and shows the edit form.
func (h *Handler) EditStudent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	f := view.NewEditForm(h.api, &redirector{})
	defer f.Dispose()

	if err := f.Load(r.Context(), id); err != nil {
		return
	}
	render(w, "form", http.StatusOK, editPage(f))
}

// UpdateStudent handles the edit form's submit and cancel buttons. The posted
// values are the user's draft, read-only fields included.
func (h *Handler) UpdateStudent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	nav := &redirector{}
	f := view.NewEditForm(h.api, nav)
	defer f.Dispose()

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if r.PostForm.Get("action") == "cancel" {
		f.Cancel()
		nav.done(w, r)
		return
	}

	var draft model.Student
	for _, field := range model.Fields {
		if field.CreateOnly {
			continue
		}
		if err := draft.Set(field.Name, r.PostForm.Get(field.Name)); err != nil {
			logger.Log.WithError(err).Error("Edit form field mismatch")
		}
	}
	f.Restore(id, draft)

	if err := f.Submit(r.Context()); err != nil {
		return
	}
	if nav.done(w, r) {
		return
	}
	render(w, "form", http.StatusOK, editPage(f))
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func createPage(f *view.CreateForm) formPage {
	return formPage{
		Title:       "Add Student",
		Class:       "add-student",
		Heading:     "Add New Student",
		Action:      "/add",
		SubmitLabel: "Add Student",
		State:       f.State().String(),
		Error:       f.ErrorText(),
		Fields:      createFields(f.Draft()),
	}
}

func editPage(f *view.EditForm) formPage {
	return formPage{
		Title:       "Edit Student",
		Class:       "edit-student",
		Heading:     "Edit Student",
		Action:      editAction(f.ID()),
		Method:      http.MethodPut,
		SubmitLabel: "Update Student",
		State:       f.State().String(),
		Error:       f.ErrorText(),
		Fields:      editFields(f.Draft()),
	}
}

func pathID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil || id == 0 {
		http.NotFound(w, r)
		return 0, false
	}
	return uint(id), true
}
