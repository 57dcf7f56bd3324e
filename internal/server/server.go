package server

// Server glues the endpoint-specific HTTP servers into one route surface.
type Server struct {
	CheckServer
	DatasetServer
}

func NewServer(
	checkServer CheckServer,
	datasetServer DatasetServer,
) Server {
	return Server{
		CheckServer:   checkServer,
		DatasetServer: datasetServer,
	}
}
