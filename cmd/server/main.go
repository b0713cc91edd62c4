package main

import (
	"github.com/pwspen/vlmcar/internal/bootstrap"
)

func main() {
	bootstrap.Run()
}
