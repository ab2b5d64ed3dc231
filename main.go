package main

import "github.com/basit/tasklist-backend/cmd"

func main() {
	cmd.Execute()
}
