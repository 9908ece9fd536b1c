package main

import "github.com/Alijeyrad/trialbook_backend/cmd"

func main() {
	cmd.Execute()
}
