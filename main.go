package main

import (
	"github.com/avdeyev/duochat/cmd/server"
)

func main() {
	server.NewServer().Run()
}
