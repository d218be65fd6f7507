package models

// Tag labels tasks and journal entries. Tags are append-only: the described
// flows never delete or rename them, and a dangling tag id on a task is
// omitted at render time rather than treated as corruption.
type Tag struct {
	ID    string `json:"id"`
	Name  string `json:"name" validate:"required,min=1"`
	Color string `json:"color"`
}

// TagColors is the fixed palette new tags draw from.
var TagColors = []string{
	"bg-red-100 text-red-700",
	"bg-orange-100 text-orange-700",
	"bg-amber-100 text-amber-700",
	"bg-green-100 text-green-700",
	"bg-emerald-100 text-emerald-700",
	"bg-teal-100 text-teal-700",
	"bg-cyan-100 text-cyan-700",
	"bg-blue-100 text-blue-700",
	"bg-indigo-100 text-indigo-700",
	"bg-violet-100 text-violet-700",
	"bg-purple-100 text-purple-700",
	"bg-fuchsia-100 text-fuchsia-700",
	"bg-pink-100 text-pink-700",
	"bg-rose-100 text-rose-700",
}
