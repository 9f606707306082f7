package main

import "github.com/eleven-am/classroom-relay/internal/bootstrap"

func main() {
	bootstrap.Run()
}
