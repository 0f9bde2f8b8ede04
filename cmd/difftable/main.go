package main

import (
	"log"

	"github.com/golang/glog"
	"github.com/interpretive-systems/difftable/internal/cli"
)

func main() {
	defer glog.Flush()
	if err := cli.Execute(); err != nil {
		glog.Flush()
		log.Fatal(err)
	}
}
