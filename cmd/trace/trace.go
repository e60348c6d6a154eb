package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/timewinder-dev/attackpath/loader"
	"github.com/timewinder-dev/attackpath/search"
)

var (
	file  = flag.String("file", "", "Task file")
	paths = flag.Int("paths", 1, "Stop after this many attack paths")
	depth = flag.Int("depth", 0, "Do not expand nodes at this depth (0 = unbounded)")
)

func main() {
	flag.Parse()
	if *file == "" {
		log.Fatal("--file is required")
	}
	task, err := loader.LoadTaskFromFile(*file)
	if err != nil {
		log.Fatalf("couldn't load: %s", err)
	}
	s, err := search.New(task, search.WithDebugWriter(os.Stdout), search.WithMaxDepth(*depth))
	if err != nil {
		log.Fatalf("couldn't start search: %s", err)
	}
	found := 0
	for sol := range s.All() {
		found++
		fmt.Println("*******")
		fmt.Printf("Path %d: %s\n", found, sol)
		if found == *paths {
			break
		}
	}
	if err := s.Err(); err != nil {
		log.Fatalln("Got err:", err)
	}
	st := s.Stats()
	fmt.Printf("Finished: %d paths, %d expanded, %d unique states\n", found, st.Expanded, st.UniqueStates)
}
