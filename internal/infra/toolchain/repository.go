package toolchain

// RemoteRepo is the standard RemoteRepository handle. Deploy operations may
// flip the unique-versions setting while reconciling it with the toolchain
// generation.
type RemoteRepo struct {
	id     string
	url    string
	unique bool
}

func NewRemoteRepo(id, url string, unique bool) *RemoteRepo {
	return &RemoteRepo{id: id, url: url, unique: unique}
}

func (r *RemoteRepo) ID() string           { return r.id }
func (r *RemoteRepo) URL() string          { return r.url }
func (r *RemoteRepo) UniqueVersions() bool { return r.unique }

func (r *RemoteRepo) SetUniqueVersions(unique bool) {
	r.unique = unique
}
