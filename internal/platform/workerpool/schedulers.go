// internal/platform/workerpool/schedulers.go
package workerpool

import (
	"sort"
)

// PriorityScheduler ordena tareas por prioridad (mayor primero).
type PriorityScheduler struct{}

// NewPriorityScheduler crea un scheduler basado en prioridad.
func NewPriorityScheduler() *PriorityScheduler {
	return &PriorityScheduler{}
}

// Schedule ordena por prioridad descendente. El sort es estable para
// que tareas con la misma prioridad conserven su orden de declaración.
func (s *PriorityScheduler) Schedule(tasks []Task) []Task {
	scheduled := make([]Task, len(tasks))
	copy(scheduled, tasks)

	sort.SliceStable(scheduled, func(i, j int) bool {
		return scheduled[i].Priority() > scheduled[j].Priority()
	})

	return scheduled
}

// Name retorna el nombre del scheduler.
func (s *PriorityScheduler) Name() string {
	return "priority"
}

// FIFOScheduler no reordena (First In First Out).
type FIFOScheduler struct{}

// NewFIFOScheduler crea un scheduler FIFO.
func NewFIFOScheduler() *FIFOScheduler {
	return &FIFOScheduler{}
}

// Schedule retorna tasks en el orden original.
func (s *FIFOScheduler) Schedule(tasks []Task) []Task {
	scheduled := make([]Task, len(tasks))
	copy(scheduled, tasks)
	return scheduled
}

// Name retorna el nombre del scheduler.
func (s *FIFOScheduler) Name() string {
	return "fifo"
}
