package editor

// DefaultCatalog is the built-in list of quick-add skill suggestions.
var DefaultCatalog = []string{
	"JavaScript",
	"TypeScript",
	"React",
	"Node.js",
	"Python",
	"Java",
	"Go",
	"SQL",
	"Git",
	"Docker",
	"AWS",
	"Communication",
	"Leadership",
	"Problem Solving",
	"Teamwork",
}
