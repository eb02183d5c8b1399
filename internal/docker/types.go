package docker

// Container is a summary of one container as reported by the daemon
type Container struct {
	ID      string
	Image   string
	ImageID string
	State   string // "running", "exited", ...
	Status  string // human-readable, e.g. "Up 2 hours"
	Labels  map[string]string
	Names   []string
}

// Image is a summary of one local image
type Image struct {
	ID       string
	RepoTags []string
	Size     int64
	Created  int64
}
