// Package script loads action schedules written in Lua.
package script

import (
	"fmt"

	libs "github.com/metafates/mangal-lua-libs"
	"github.com/playcheck-cli/playcheck/constant"
	"github.com/playcheck-cli/playcheck/schedule"
	"github.com/playcheck-cli/playcheck/util"
	lua "github.com/yuin/gopher-lua"
)

// Load runs the Lua script at path and builds a schedule from its Actions function.
// Actions run by the schedule are logged with tag.
func Load(path, tag string) (*schedule.ActionSchedule, error) {
	state := lua.NewState()
	defer state.Close()
	libs.Preload(state)

	name := util.FileStem(path)

	if err := compileAndRun(state, path); err != nil {
		forget(path)
		return nil, fmt.Errorf("load schedule %s: %w", name, err)
	}

	fn := state.GetGlobal(constant.ScheduleActionsFn)
	if fn.Type() != lua.LTFunction {
		return nil, fmt.Errorf("function %s is required but not defined in %s", constant.ScheduleActionsFn, name)
	}

	if err := state.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}); err != nil {
		return nil, fmt.Errorf("%s in %s: %w", constant.ScheduleActionsFn, name, err)
	}

	ret := state.Get(-1)
	state.Pop(1)

	table, ok := ret.(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("%s in %s returned %s, expected %s", constant.ScheduleActionsFn, name, ret.Type(), lua.LTTable)
	}

	b := schedule.NewBuilder(tag)
	for i := 1; i <= table.Len(); i++ {
		entry, ok := table.RawGetInt(i).(*lua.LTable)
		if !ok {
			return nil, fmt.Errorf("action #%d in %s is not a table", i, name)
		}
		if err := addFromTable(b, entry); err != nil {
			return nil, fmt.Errorf("action #%d in %s: %w", i, name, err)
		}
	}

	return b.Build(), nil
}
