package main

import (
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/app"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/config"
)

func main() {
	config.MustInit()
	app.MustNewApp().Run()
}
