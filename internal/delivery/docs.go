package delivery

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const docsPageContent = `<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="UTF-8">
<title>API de Produtos e Categorias</title>
<style>
table { border-collapse: collapse; font-family: sans-serif; }
th, td { text-align: left; padding: 4px 12px; border-bottom: 1px solid #ddd; }
td:first-child { font-family: monospace; font-weight: bold; }
</style>
</head>
<body>
<h1>API de Produtos e Categorias</h1>
<p>Erros: <code>{"Status":"Fail","Message":"..."}</code>. Ids não inteiros respondem 400.</p>

<h2>Categorias</h2>
<table>
<tr><th>Método</th><th>Rota</th><th>Resposta</th></tr>
<tr><td>GET</td><td><a href="/categorias">/categorias</a></td><td>200, lista de categorias</td></tr>
<tr><td>GET</td><td>/categorias/{id}</td><td>200 ou 404</td></tr>
<tr><td>GET</td><td>/categorias/{id}/produtos</td><td>200 com os produtos da categoria, ou 404</td></tr>
<tr><td>POST</td><td>/categorias</td><td>201 + Location. Corpo <code>{"nome":"..."}</code>, até 100 caracteres</td></tr>
<tr><td>PUT</td><td>/categorias/{id}</td><td>200 ou 404. Só o nome é alterado</td></tr>
<tr><td>DELETE</td><td>/categorias/{id}</td><td>204, 404, ou 409 se ainda houver produtos</td></tr>
</table>

<h2>Produtos</h2>
<table>
<tr><th>Método</th><th>Rota</th><th>Resposta</th></tr>
<tr><td>GET</td><td><a href="/produtos">/produtos</a></td><td>200, lista de produtos com a categoria</td></tr>
<tr><td>GET</td><td>/produtos/{id}</td><td>200 ou 404</td></tr>
<tr><td>POST</td><td>/produtos</td><td>201 + Location, ou 400 se a categoriaId não existir. Corpo <code>{"nome":"Água","preco":2.50,"estoque":100,"categoriaId":1}</code></td></tr>
<tr><td>PUT</td><td>/produtos/{id}</td><td>200, 404, ou 400 se a categoriaId não existir</td></tr>
<tr><td>DELETE</td><td>/produtos/{id}</td><td>204 ou 404</td></tr>
</table>

<p><a href="/health">/health</a> responde 200 quando o banco está acessível, 503 caso contrário.</p>
</body>
</html>
`

func serveDocsPage(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(docsPageContent))
}
