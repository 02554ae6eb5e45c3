package main

import (
	"flag"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"

	"codehub.local/internal/app/account"
)

// 生成 bcrypt 哈希，用于手工修数据或预置测试账号
func main() {
	cost := flag.Int("cost", bcrypt.DefaultCost, "bcrypt cost")
	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatal("usage: go run ./cmd/tools/hashpass [-cost N] <password>")
	}
	password := flag.Arg(0)
	if err := account.ValidatePassword(password); err != nil {
		log.Fatal(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), *cost)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(string(hash))
}
