package model

import "sort"

// TaskBlueprint describes a task that is created automatically with a stage.
type TaskBlueprint struct {
	TaskType  TaskType
	Name      string
	Status    Status
	Templates []string
}

// stageTaskConfig lists, per stage type and in creation order, the tasks a new
// stage starts with. It is static program data and never changes at runtime.
var stageTaskConfig = map[StageType][]TaskBlueprint{
	StageTypeSetup: {
		{TaskType: TaskTypeAction, Name: "Open case file", Status: StatusNotStarted},
		{TaskType: TaskTypeContact, Name: "Send welcome letter to client", Status: StatusNotStarted, Templates: []string{"client-welcome"}},
		{TaskType: TaskTypeContact, Name: "Introduce counterparty attorney", Status: StatusNotStarted, Templates: []string{"attorney-introduction"}},
		{TaskType: TaskTypeUpload, Name: "Upload signed engagement letter", Status: StatusNotStarted},
	},
	StageTypeContractPreparing: {
		{TaskType: TaskTypeAction, Name: "Order title search", Status: StatusNotStarted},
		{TaskType: TaskTypeContact, Name: "Request contract draft", Status: StatusNotStarted, Templates: []string{"contract-draft-request"}},
		{TaskType: TaskTypeAction, Name: "Review contract draft", Status: StatusNotStarted},
		{TaskType: TaskTypeUpload, Name: "Upload contract draft", Status: StatusNotStarted},
	},
	StageTypeContractSigning: {
		{TaskType: TaskTypeContact, Name: "Send contract for signature", Status: StatusNotStarted, Templates: []string{"contract-signature-request"}},
		{TaskType: TaskTypeUpload, Name: "Upload fully executed contract", Status: StatusNotStarted},
		{TaskType: TaskTypeAction, Name: "Confirm down payment received", Status: StatusNotStarted},
		{TaskType: TaskTypeContact, Name: "Notify parties of executed contract", Status: StatusNotStarted, Templates: []string{"contract-executed-notice", "client-status-update"}},
	},
	StageTypeMortgage: {
		{TaskType: TaskTypeContact, Name: "Request mortgage commitment", Status: StatusNotStarted, Templates: []string{"mortgage-commitment-request"}},
		{TaskType: TaskTypeAction, Name: "Schedule appraisal", Status: StatusNotStarted},
		{TaskType: TaskTypeUpload, Name: "Upload mortgage commitment letter", Status: StatusNotStarted},
		{TaskType: TaskTypeAction, Name: "Clear title objections", Status: StatusNotStarted},
		{TaskType: TaskTypeContact, Name: "Send mortgage status update", Status: StatusNotStarted, Templates: []string{"client-status-update"}},
	},
	StageTypeClosing: {
		{TaskType: TaskTypeContact, Name: "Schedule closing", Status: StatusNotStarted, Templates: []string{"closing-schedule-notice"}},
		{TaskType: TaskTypeAction, Name: "Review closing statement", Status: StatusNotStarted},
		{TaskType: TaskTypeAction, Name: "Final walk-through", Status: StatusNotStarted},
		{TaskType: TaskTypeUpload, Name: "Upload recorded deed", Status: StatusNotStarted},
		{TaskType: TaskTypeContact, Name: "Send closing congratulations", Status: StatusNotStarted, Templates: []string{"closing-congratulations"}},
	},
}

// TaskBlueprintsFor returns a copy of the blueprint list for stageType, or nil
// for an unknown stage type.
func TaskBlueprintsFor(stageType StageType) []TaskBlueprint {
	blueprints, ok := stageTaskConfig[stageType]
	if !ok {
		return nil
	}
	out := make([]TaskBlueprint, len(blueprints))
	for i, bp := range blueprints {
		out[i] = bp
		out[i].Templates = append([]string(nil), bp.Templates...)
	}
	return out
}

// ReferencedTemplateTitles returns every template title named by any
// blueprint, sorted and without duplicates.
func ReferencedTemplateTitles() []string {
	seen := make(map[string]struct{})
	for _, blueprints := range stageTaskConfig {
		for _, bp := range blueprints {
			for _, title := range bp.Templates {
				seen[title] = struct{}{}
			}
		}
	}
	titles := make([]string, 0, len(seen))
	for title := range seen {
		titles = append(titles, title)
	}
	sort.Strings(titles)
	return titles
}

// DefaultTemplates are seeded by `migrate --seed-templates` for every title the
// stage task configuration references.
var DefaultTemplates = []Template{
	{Title: "client-welcome", Content: "Dear {{clientName}},\n\nThank you for choosing us for your transaction at {{premisesAddress}}. We will guide you through every step until closing.\n\nBest regards,\n{{handlerName}}"},
	{Title: "attorney-introduction", Content: "Dear {{attorneyName}},\n\nWe represent {{clientName}} in the transaction for {{premisesAddress}}. Please direct all correspondence on this matter to {{handlerEmail}}.\n\nRegards,\n{{handlerName}}"},
	{Title: "contract-draft-request", Content: "Dear {{attorneyName}},\n\nPlease send us the draft contract of sale for {{premisesAddress}} at your earliest convenience.\n\nRegards,\n{{handlerName}}"},
	{Title: "contract-signature-request", Content: "Dear {{clientName}},\n\nThe contract for {{premisesAddress}} is ready for your signature. Please sign and return it by {{dueDate}}.\n\nRegards,\n{{handlerName}}"},
	{Title: "contract-executed-notice", Content: "All parties,\n\nThe contract for {{premisesAddress}} has been fully executed on {{executionDate}}.\n\nRegards,\n{{handlerName}}"},
	{Title: "client-status-update", Content: "Dear {{clientName}},\n\nYour transaction for {{premisesAddress}} has moved to the {{stageName}} stage.\n\nRegards,\n{{handlerName}}"},
	{Title: "mortgage-commitment-request", Content: "Dear {{lenderName}},\n\nPlease provide the mortgage commitment letter for {{clientName}} regarding {{premisesAddress}}.\n\nRegards,\n{{handlerName}}"},
	{Title: "closing-schedule-notice", Content: "All parties,\n\nThe closing for {{premisesAddress}} is scheduled for {{closingDate}} at {{closingLocation}}.\n\nRegards,\n{{handlerName}}"},
	{Title: "closing-congratulations", Content: "Dear {{clientName}},\n\nCongratulations on closing on {{premisesAddress}}! It was a pleasure working with you.\n\nBest regards,\n{{handlerName}}"},
}
