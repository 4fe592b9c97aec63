package main

import (
	"fmt"
	"os"
)

type Env map[string]string

func Environment() Env {
	return map[string]string{
		"NEOIRQ_TARGET": getenv("NEOIRQ_TARGET", "default"),
		"NEOIRQ_PLAN":   getenv("NEOIRQ_PLAN", ""),
	}
}

func (e Env) Print() {
	for k, v := range e {
		fmt.Printf("set %s=%s\n", k, v)
	}
}

func (e Env) Value(key string) string {
	if v, ok := e[key]; ok {
		return v
	}
	return ""
}

func getenv(key, _default string) (value string) {
	value = os.Getenv(key)
	if len(value) == 0 {
		value = _default
	}
	return value
}
