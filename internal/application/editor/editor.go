// Package editor implementa la edición en línea de filas de un listado (condiciones de pago y
// de envío). Cada fila está en Display, Editing o Saving; como máximo una fila por página
// está en Editing.
package editor

import (
	"context"
	"sync"

	"github.com/mdaskas/customer-console/internal/domain"
	"github.com/mdaskas/customer-console/pkg/logger"
)

// Teclas reconocidas por HandleKey.
const (
	KeyEnter  = "Enter"
	KeyEscape = "Escape"
)

// Buffers valores locales de la fila en edición. DueDays solo aplica a condiciones de pago.
type Buffers struct {
	Description string
	DueDays     string
}

// RowState estado de una fila: Display, Editing o Saving.
type RowState interface {
	rowState()
}

// Display la fila muestra los valores del servidor.
type Display struct{}

// Editing la fila tiene buffers locales. Err es el último fallo al guardar o de validación.
type Editing struct {
	Buffers Buffers
	Err     error
}

// Saving hay una mutación en curso con estos buffers.
type Saving struct {
	Buffers Buffers
}

func (Display) rowState() {}
func (Editing) rowState() {}
func (Saving) rowState()  {}

// ErrorPolicy qué hacer cuando falla el guardado de una fila.
type ErrorPolicy int

const (
	// ErrorPolicySurface devuelve el error y deja la fila en Editing con sus buffers.
	ErrorPolicySurface ErrorPolicy = iota
	// ErrorPolicySwallow vuelve a Display como si el guardado hubiera ido bien; el error solo se registra.
	ErrorPolicySwallow
)

// RowSaver valida y persiste los buffers de una fila. SaveRow emite una única mutación
// identificada por el código de la fila e invalida el listado al terminar, falle o no.
type RowSaver interface {
	ValidateRow(b Buffers) error
	SaveRow(ctx context.Context, code string, b Buffers) error
}

// Editor estado de edición de un listado para una sesión de operador.
type Editor struct {
	saver  RowSaver
	policy ErrorPolicy
	log    *logger.Logger

	mu      sync.Mutex
	rows    map[string]RowState // solo filas fuera de Display
	editing string              // código de la fila en Editing ("" = ninguna)
}

// New construye un editor vacío (todas las filas en Display).
func New(saver RowSaver, policy ErrorPolicy, log *logger.Logger) *Editor {
	if log == nil {
		log = logger.Nop()
	}
	return &Editor{
		saver:  saver,
		policy: policy,
		log:    log,
		rows:   make(map[string]RowState),
	}
}

// State estado actual de la fila; las filas desconocidas están en Display.
func (e *Editor) State(code string) RowState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stateLocked(code)
}

// Editing devuelve la fila en edición, si hay alguna.
func (e *Editor) Editing() (string, Editing, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.editing == "" {
		return "", Editing{}, false
	}
	st, _ := e.rows[e.editing].(Editing)
	return e.editing, st, true
}

// Begin pasa la fila a Editing con buffers sembrados desde sus valores actuales. Una edición
// sin guardar en otra fila se abandona. Si la fila ya está en Editing se conservan sus buffers.
func (e *Editor) Begin(code string, current Buffers) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.stateLocked(code).(type) {
	case Saving:
		return domain.ErrRowBusy
	case Editing:
		return nil
	}
	if e.editing != "" {
		delete(e.rows, e.editing)
	}
	e.rows[code] = Editing{Buffers: current}
	e.editing = code
	return nil
}

// Edit reemplaza los buffers de la fila en edición.
func (e *Editor) Edit(code string, b Buffers) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	st, ok := e.stateLocked(code).(Editing)
	if !ok {
		return domain.ErrNotEditing
	}
	st.Buffers = b
	e.rows[code] = st
	return nil
}

// Cancel descarta los buffers y vuelve a Display sin llamar a la API. Sobre una fila en
// Display no hace nada.
func (e *Editor) Cancel(code string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.stateLocked(code).(type) {
	case Saving:
		return domain.ErrRowBusy
	case Editing:
		delete(e.rows, code)
		if e.editing == code {
			e.editing = ""
		}
	}
	return nil
}

// Confirm guarda los buffers con una única mutación. Mientras la fila está en Saving otro
// Confirm devuelve ErrRowBusy. Buffers inválidos dejan la fila en Editing con el error de
// validación y no llaman a la API.
func (e *Editor) Confirm(ctx context.Context, code string, b Buffers) error {
	e.mu.Lock()
	switch e.stateLocked(code).(type) {
	case Saving:
		e.mu.Unlock()
		return domain.ErrRowBusy
	case Display:
		e.mu.Unlock()
		return domain.ErrNotEditing
	}
	if err := e.saver.ValidateRow(b); err != nil {
		e.rows[code] = Editing{Buffers: b, Err: err}
		e.mu.Unlock()
		return err
	}
	e.rows[code] = Saving{Buffers: b}
	if e.editing == code {
		e.editing = ""
	}
	e.mu.Unlock()

	err := e.saver.SaveRow(ctx, code, b)

	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.rows, code)
	if err == nil {
		return nil
	}
	if e.policy == ErrorPolicySwallow {
		e.log.Warn().Err(err).Str("code", code).Msg("editor: error al guardar fila ignorado")
		return nil
	}
	// Si otra fila ocupó la edición mientras se guardaba, esta vuelve a Display.
	if e.editing == "" {
		e.rows[code] = Editing{Buffers: b, Err: err}
		e.editing = code
	}
	return err
}

// HandleKey Enter confirma y Escape cancela; cualquier otra tecla se ignora.
func (e *Editor) HandleKey(ctx context.Context, code, key string, b Buffers) error {
	switch key {
	case KeyEnter:
		return e.Confirm(ctx, code, b)
	case KeyEscape:
		return e.Cancel(code)
	default:
		return nil
	}
}

func (e *Editor) stateLocked(code string) RowState {
	if st, ok := e.rows[code]; ok {
		return st
	}
	return Display{}
}

