package main

import (
	"github.com/modashop/catalog-gateway/internal/runtime"
)

func main() {
	runtime.New().Run()
}
