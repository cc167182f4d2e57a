package constant

// Schedule Script Identifiers - these constants define the required global function signatures for Lua schedule scripts.
const (
	ScheduleActionsFn = "Actions"
)

// ScheduleTemplate is a Go text/template for scaffolding new Lua schedule files.
const ScheduleTemplate = `{{ $divider := repeat "-" (plus (max (len .Name) (len .Author) 3) 12) }}{{ $divider }}
-- @name    {{ .Name }}
-- @author  {{ .Author }}
-- @license MIT
{{ $divider }}


---@alias action { after: number, action: string, position: number|nil, track: string|nil }


----- MAIN -----

--- Returns the timed actions applied to the player during the session.
-- Delays are in milliseconds and relative to the previous action.
-- Supported actions: pause, play, seek, stop, disable_track, enable_track
-- @return action[] Table of actions
function {{ .ScheduleActionsFn }}()
	return {
		-- { after = 5000, action = "pause" },
		-- { after = 2000, action = "play" },
	}
end

--- END MAIN ---

-- ex: ts=4 sw=4 et filetype=lua
`
