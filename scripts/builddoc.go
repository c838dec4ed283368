// Copyright 2021 Silvio Böhler
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"os"
	"strings"
	"text/template"

	"github.com/sboehler/tight/cmd"
)

const (
	exampleFile = "doc/example.yaml"
	configFile  = "doc/config.yaml"
)

type config struct {
	ExampleFile string
	Commands    map[string]string
}

func main() {
	c, err := createConfig()
	if err != nil {
		panic(err)
	}
	err = generate(c)
	if err != nil {
		panic(err)
	}
}

func createConfig() (*config, error) {
	var c = &config{
		Commands: make(map[string]string),
	}
	content, err := os.ReadFile(exampleFile)
	if err != nil {
		return nil, err
	}
	c.ExampleFile = string(content)

	c.Commands["Help"] = run("--help")
	c.Commands["HelpAdd"] = run("add", "--help")
	c.Commands["HelpImport"] = run("import", "--help")

	c.Commands["List"] = run("list", "--ledger", exampleFile)
	c.Commands["Status"] = run("status", "--color=false", "--date", "2020-11-15", "--ledger", exampleFile)
	c.Commands["StatusAligned"] = run("status", "--color=false", "--date", "2020-11-15", "--aligned", "--months", "--years", "--ledger", exampleFile)
	c.Commands["StatusByTag"] = run("status", "--color=false", "--date", "2020-11-15", "--months", "--by-tag", "--ledger", exampleFile)
	c.Commands["StatusExplain"] = run("status", "--color=false", "--date", "2020-11-15", "--months", "--explain", "--ledger", exampleFile)
	c.Commands["Check"] = run("check", "--expired", "--date", "2020-11-15", exampleFile)
	return c, nil
}

func generate(c *config) error {
	tpl, err := template.ParseFiles("doc/README.md")
	if err != nil {
		return err
	}
	if err = tpl.Execute(os.Stdout, c); err != nil {
		return err
	}
	return nil
}

func run(args ...string) string {
	var c = cmd.CreateCmd("development")
	c.SetArgs(append(args, "--config", configFile))
	var b strings.Builder
	b.WriteString("$ tight")
	for _, a := range args {
		b.WriteRune(' ')
		b.WriteString(a)
	}
	b.WriteRune('\n')
	c.SetOut(&b)
	c.Execute()
	return b.String()
}
