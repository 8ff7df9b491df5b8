package main

import "quill/cmd"

// @title Quill API
// @version 1.0
// @description Read-only JSON view of the blog's posts and comments

// @host localhost:8080
// @BasePath /api/v1

func main() {
	cmd.Execute()
}
