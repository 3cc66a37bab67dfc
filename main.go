package main

import "github.com/yashrajoria/restaurant-service/cmd"

func main() {
	cmd.Execute()
}
