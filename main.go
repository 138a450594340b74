/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/tristendillon/docsbuilder/cmd"

func main() {
	cmd.Execute()
}
