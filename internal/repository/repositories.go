package repository

// Repositories is a container for all repository instances.
//
// Services receive this container instead of individual repositories, so
// adding a repository later does not change any constructor signature.
type Repositories struct {
	Users UserRepository
}

// NewRepositories constructs the repository container.
//
// Every repository is in memory today; one backed by a real store would
// take its connection from the server container here.
func NewRepositories() *Repositories {
	return &Repositories{
		Users: NewSampleUserRepository(),
	}
}
