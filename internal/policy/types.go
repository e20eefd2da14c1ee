// Package policy implements the intent policy store: the single reader
// (and sole writer) of the workspace's declarative intent file, plus
// the glob-based scope and ignore matchers used to authorize tool
// calls against a declared intent.
package policy

import "time"

// Status is the lifecycle state of an Intent.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusInProgress Status = "IN_PROGRESS"
	StatusBlocked    Status = "BLOCKED"
	StatusComplete   Status = "COMPLETE"
)

// EntityType distinguishes an AI contributor from a human one.
type EntityType string

const (
	EntityAI    EntityType = "AI"
	EntityHuman EntityType = "HUMAN"
)

// Contributor records one party working against an Intent.
type Contributor struct {
	EntityType      EntityType `yaml:"entity_type" json:"entity_type"`
	ModelIdentifier string     `yaml:"model_identifier,omitempty" json:"model_identifier,omitempty"`
	SessionID       string     `yaml:"session_id,omitempty" json:"session_id,omitempty"`
	LastActive      *time.Time `yaml:"last_active,omitempty" json:"last_active,omitempty"`
}

// Intent is a declarative work unit in the workspace policy file: it
// binds an identifier to an authorized scope and a set of constraints.
//
// Ids are unique within a file. Status transitions are monotone only
// through UpdateIntentStatus; the engine never deletes an Intent.
type Intent struct {
	ID                 string        `yaml:"id" json:"id"`
	Name               string        `yaml:"name" json:"name"`
	Status             Status        `yaml:"status" json:"status"`
	OwnedScope         []string      `yaml:"owned_scope" json:"owned_scope"`
	Constraints        []string      `yaml:"constraints,omitempty" json:"constraints,omitempty"`
	AcceptanceCriteria []string      `yaml:"acceptance_criteria,omitempty" json:"acceptance_criteria,omitempty"`
	DependsOn          []string      `yaml:"depends_on,omitempty" json:"depends_on,omitempty"`
	Contributors       []Contributor `yaml:"contributors,omitempty" json:"contributors,omitempty"`
	CreatedAt          time.Time     `yaml:"created_at" json:"created_at"`
	UpdatedAt          time.Time     `yaml:"updated_at" json:"updated_at"`
	BlockedReason      string        `yaml:"blocked_reason,omitempty" json:"blocked_reason,omitempty"`
}

// intentFile is the on-disk shape of .orchestration/active_intents.yaml.
type intentFile struct {
	ActiveIntents []Intent `yaml:"active_intents"`
}

// fileHeader is written verbatim before the marshaled YAML body on every
// rewrite. It is a literal byte prelude, not a YAML comment node, because
// yaml.v3 does not round-trip comments — see SPEC_FULL.md's Open
// Question decision on the rewriter.
const fileHeader = `# This file is managed by intentguard.
# Edits to active_intents below take effect on the next read.
# Ad-hoc comments outside this header are not preserved across rewrites.
# See .orchestration/README or the project policy docs for schema details.
`
