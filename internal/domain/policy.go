package domain

// DeployPolicyInput is the document the deploy policy gate evaluates before
// a record is republished.
type DeployPolicyInput struct {
	Project        string   `json:"project"`
	Number         int64    `json:"number"`
	RepositoryID   string   `json:"repository_id"`
	RepositoryURL  string   `json:"repository_url"`
	UniqueVersions bool     `json:"unique_versions"`
	Artifacts      []string `json:"artifacts"`
}

type PolicyDeny struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
}

type PolicyResult struct {
	Allow bool         `json:"allow"`
	Deny  []PolicyDeny `json:"deny,omitempty"`
}
