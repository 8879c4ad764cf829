package hsf_test

import (
	"fmt"

	"github.com/djdv/go-hsf"
)

func ExampleFrequencyForest() {
	const (
		topSize = 256
		key     = "name"
	)
	min := hsf.NewCapacity(1.0)
	max := hsf.NewCapacity(2.0)
	forest, err := hsf.NewFrequencyForest[string](min, max)
	if err != nil {
		panic(err)
	}
	forest.Insert(key, 0)
	if it := forest.Find(key, 0); !it.End() {
		fmt.Printf("%s: level %d\n", it.Key(), it.Level())
	}
	// Output:
	// name: level 0
}

func ExampleLearnedFrequencyForest() {
	min := hsf.Capacity{Base: 1.1, FillFactor: 1.0, TopSize: 256}
	max := hsf.Capacity{Base: 1.1, FillFactor: 1.1, TopSize: 256}
	forest, err := hsf.NewLearnedFrequencyForest[int](min, max)
	if err != nil {
		panic(err)
	}
	const hottest = 0
	forest.Insert(hottest, 0)
	it := forest.Find(hottest, 0)
	fmt.Println("mispredictions:", forest.Mispredictions())
	fmt.Println("found at level:", it.Level())
	// Output:
	// mispredictions: 0
	// found at level: 0
}
