package logger_test

import (
	"fmt"

	"github.com/loghive/loghive/core"
	"github.com/loghive/loghive/handler"
	"github.com/loghive/loghive/logger"
)

func Example() {
	m := logger.NewManager()
	mem := handler.NewMemoryHandler()
	m.AddHandler(mem)

	log := m.GetLogger("svc.worker")
	log.SetLevel(core.Info)

	log.Debug("never shows: below the level")
	log.Info("worker %d started", 3)
	log.Warning("disk at %d%%", 91)

	fmt.Println(mem.Text())
	// Output:
	// worker 3 started
	// disk at 91%
}

func Example_hierarchy() {
	m := logger.NewManager()
	mem := handler.NewMemoryHandler()
	m.AddHandler(mem)

	m.GetLogger("svc").SetLevel(core.Error)
	child := m.GetLogger("svc.api")

	child.Warning("inherited level filters this")
	child.Error("this passes")

	fmt.Println(mem.Text())
	// Output:
	// this passes
}
