// Command embedctl is a demo CLI over pkg/embedder.
package main

import "github.com/satetsu888/japanese-tfidf-embedder/cmd/embedctl/cli"

func main() {
	cli.Run()
}
