package main

import "lms-backend/cmd"

func main() {
	cmd.Execute()
}
