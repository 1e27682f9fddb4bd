package rbac

// Default policy. Students study and take exams; editors curate the bank;
// admin holds everything including the lock-gated destructive actions.
var RolePermissions = map[string][]string{
	"student": {
		"question:list",
		"question:view",
		"question:similar",
		"attempt:create",
		"attempt:save",
		"attempt:submit",
		"attempt:view-own",
		"ai:explain",
		"export:run",
	},
	"editor": {
		"question:*",
		"attempt:view-all",
		"ai:explain",
		"export:run",
	},
	"admin": {
		"*",
	},
}
