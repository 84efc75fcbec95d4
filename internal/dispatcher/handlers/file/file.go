// Package file provides handlers for saving editors.
package file

import (
	"errors"
	"fmt"

	"github.com/j0lol/hxzed/internal/dispatcher/handler"
)

// Action names for file operations.
const (
	ActionSave    = "editor::Save"
	ActionSaveAll = "workspace::SaveAll"
)

// Document is an editor backed by a file.
type Document interface {
	// Name returns a display name.
	Name() string
	// Dirty reports unsaved changes.
	Dirty() bool
	// Save writes the contents to disk.
	Save() error
}

// Documents provides the open documents.
// This interface is implemented by the workspace.
type Documents interface {
	// FocusedDocument returns the focused document.
	FocusedDocument() (Document, bool)
	// Documents returns every open document.
	Documents() []Document
}

// ErrNoDocument indicates no document has focus.
var ErrNoDocument = errors.New("no focused document")

// Handler handles file actions.
type Handler struct {
	docs Documents
}

// NewHandler creates a file handler saving docs.
func NewHandler(docs Documents) *Handler {
	return &Handler{docs: docs}
}

// Actions returns the action names handled.
func (h *Handler) Actions() []string {
	return []string{ActionSave, ActionSaveAll}
}

// Register registers every file action with r.
func (h *Handler) Register(r *handler.Registry) {
	for _, name := range h.Actions() {
		r.Register(name, h)
	}
}

// Handle processes a file action.
func (h *Handler) Handle(action handler.Action, ctx *handler.Context) handler.Result {
	switch action.Name {
	case ActionSave:
		return h.save(ctx)
	case ActionSaveAll:
		return h.saveAll(ctx)
	default:
		return handler.Errorf("unknown file action: %s", action.Name)
	}
}

func (h *Handler) save(ctx *handler.Context) handler.Result {
	doc, ok := h.docs.FocusedDocument()
	if !ok {
		return handler.Error(ErrNoDocument)
	}
	if err := doc.Save(); err != nil {
		return handler.Error(fmt.Errorf("save %s: %w", doc.Name(), err))
	}
	ctx.Logger.Info("saved", "name", doc.Name())
	return handler.Success().WithMessage("saved " + doc.Name())
}

func (h *Handler) saveAll(ctx *handler.Context) handler.Result {
	saved := 0
	var errs []error
	for _, doc := range h.docs.Documents() {
		if !doc.Dirty() {
			continue
		}
		if err := doc.Save(); err != nil {
			errs = append(errs, fmt.Errorf("save %s: %w", doc.Name(), err))
			continue
		}
		saved++
	}
	if len(errs) > 0 {
		return handler.Error(errors.Join(errs...))
	}
	if saved == 0 {
		return handler.NoOpWithMessage("nothing to save")
	}
	ctx.Logger.Info("saved all", "count", saved)
	return handler.Success().WithMessage(fmt.Sprintf("saved %d files", saved))
}
