package dotenv_test

import (
	"errors"
	"fmt"
	"os"

	"github.com/ardnew/ntro/dotenv"
)

func ExampleExtract() {
	vars := dotenv.Extract("# @type number\nPORT=8080\n\nHOST=localhost\n")

	for _, v := range vars {
		if v.Annotation != nil {
			fmt.Printf("%s: %s\n", v.Key, v.Annotation.Hint)
		} else {
			fmt.Printf("%s: (none)\n", v.Key)
		}
	}
	// Output:
	// PORT: number
	// HOST: (none)
}

func ExampleParseHint() {
	hint, err := dotenv.ParseHint("# @type 'dev' | 'prod' |")
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(hint.Kind(), hint)
	// Output: union 'dev' | 'prod'
}

func ExampleMerge() {
	docs := []dotenv.Document{
		dotenv.ParseDocument(".env", "# @type number\nPORT=3000\n"),
		dotenv.ParseDocument(".env.local", "# @type string\nPORT=3001\n"),
	}

	_, err := dotenv.Merge(docs)

	var conflict *dotenv.ConflictError
	if errors.As(err, &conflict) {
		fmt.Println(conflict.Key, conflict.First, conflict.Second)
	}
	// Output: PORT .env:1 .env.local:1
}

func ExampleRenderDeclarations() {
	reg := dotenv.MergeKeys([]dotenv.Document{
		dotenv.ParseDocument(".env", "B=1\nA=2\n"),
	})

	_ = dotenv.RenderDeclarations(os.Stdout, reg)
	// Output:
	// declare namespace NodeJS {
	//   interface ProcessEnv {
	//     A?: string;
	//     B?: string;
	//   }
	// }
}
