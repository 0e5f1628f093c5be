package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
)

func main() {
	// Carregar variáveis de ambiente
	if err := godotenv.Load(); err != nil {
		log.Printf("Aviso: Arquivo .env não encontrado: %v", err)
	}

	var (
		path = flag.String("path", "migrations", "diretório com os arquivos de migração")
		down = flag.Bool("down", false, "reverter a última migração")
	)
	flag.Parse()

	m, err := migrate.New("file://"+*path, databaseURL())
	if err != nil {
		log.Fatalf("Erro ao preparar migrações: %v", err)
	}
	defer m.Close()

	if *down {
		err = m.Steps(-1)
	} else {
		err = m.Up()
	}

	if err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Println("Nenhuma migração pendente")
			return
		}
		log.Fatalf("Erro ao executar migrações: %v", err)
	}

	log.Println("Migrações executadas com sucesso!")
}

// databaseURL monta a URL de conexão a partir das variáveis de ambiente
func databaseURL() string {
	host := getEnv("DB_HOST", "localhost")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "postgres")
	password := getEnv("DB_PASSWORD", "postgres")
	dbname := getEnv("DB_NAME", "gestor_pme")
	sslmode := getEnv("DB_SSLMODE", "disable")

	return fmt.Sprintf("pgx5://%s:%s@%s:%s/%s?sslmode=%s",
		user, url.QueryEscape(password), host, port, dbname, sslmode)
}

// getEnv retorna o valor da variável de ambiente ou o padrão informado
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
