// internal/platform/ui/quiet_presenter.go
package ui

import "time"

// QuietPresenter es una implementación de Presenter que no emite nada.
// Útil para tests y para ejecución sin terminal interactiva.
type QuietPresenter struct{}

// NewQuietPresenter crea un presenter silencioso
func NewQuietPresenter() *QuietPresenter { return &QuietPresenter{} }

func (q *QuietPresenter) Banner(RunInfo)                                {}
func (q *QuietPresenter) Availability([]ToolStatus)                     {}
func (q *QuietPresenter) TargetStarted(int, int, string)                {}
func (q *QuietPresenter) ToolFinished(string, Status, time.Duration, int) {}
func (q *QuietPresenter) StageNote(string)                              {}
func (q *QuietPresenter) TargetFinished(TargetResult)                   {}
func (q *QuietPresenter) Summary(BatchResult)                           {}
func (q *QuietPresenter) Info(string)                                   {}
func (q *QuietPresenter) Warning(string)                                {}
func (q *QuietPresenter) Error(string)                                  {}
func (q *QuietPresenter) Close() error                                  { return nil }
