package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/delaneyj/pipeparty/cmd/codegen/templates"
	"github.com/urfave/cli/v3"
)

const maxInputsKey = "count"

func main() {
	cmd := &cli.Command{
		Name:  "generate",
		Usage: "Generate the N-ary combine helpers",
		Flags: []cli.Flag{
			&cli.UintFlag{
				Name:  maxInputsKey,
				Usage: "Highest input arity to generate",
				Value: 4,
			},
		},
		Action: generate,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func generate(ctx context.Context, cmd *cli.Command) error {
	start := time.Now()
	log.Printf("Codegen for combine helpers started!")
	defer func() {
		log.Printf("Codegen for combine helpers finished in %v", time.Since(start))
	}()

	maxInputs := cmd.Uint(maxInputsKey)
	log.Printf("Max inputs: %d", maxInputs)

	contents := templates.CombineGen(int(maxInputs))
	return os.WriteFile("pipe/combine_gen.go", []byte(contents), 0644)
}
