package main

import (
	"github.com/wfstat-cloud/wfstat/cmd"
	"github.com/wfstat-cloud/wfstat/pkg/env"
	"github.com/wfstat-cloud/wfstat/pkg/log"
)

func main() {
	if err := env.Process(); err != nil {
		log.Fatal("environment failure", "error", err)
	}

	if err := cmd.Execute(); err != nil {
		log.Fatal("wfstat failure", "error", err)
	}
}
