package tracing

// Span attribute keys.
const (
	AttrSessionID  = "session.id"
	AttrFilePath   = "file.path"
	AttrLoadFailed = "file.load_failed"

	AttrPosition   = "edit.position"
	AttrRangeStart = "edit.range.start"
	AttrRangeEnd   = "edit.range.end"
	AttrLineCount  = "edit.line_count"
	AttrReplaced   = "edit.replaced"

	AttrRecordKind  = "history.record.kind"
	AttrRecordLabel = "history.record.label"
	AttrDoneDepth   = "history.done"
	AttrUndoneDepth = "history.undone"

	AttrScriptStep = "script.step"
	AttrScriptOp   = "script.op"
)

// Span names.
const (
	SpanPrefixEditor = "editor."
	SpanPrefixIO     = "io."
	SpanPrefixScript = "script."

	SpanScriptRun = SpanPrefixScript + "run"
	SpanIOLoad    = SpanPrefixIO + "load"
	SpanIOSave    = SpanPrefixIO + "save"
)
