package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/sirupsen/logrus"

	"usuarios-admin/internal/client"
	"usuarios-admin/internal/config"
	"usuarios-admin/internal/controller"
	"usuarios-admin/internal/form"
	"usuarios-admin/internal/listview"
)

const usage = `uso: usuarioctl <comando> [opciones]

comandos:
  list    lista usuarios (con filtro, búsqueda y orden)
  get     muestra un usuario por id
  create  crea un usuario
  update  actualiza un usuario por id
  delete  elimina un usuario por id
`

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	api := client.New(cfg.API.BaseURL)
	ctrl := controller.New(api)
	ctx := context.Background()

	var runErr error
	switch os.Args[1] {
	case "list":
		runErr = runList(ctx, ctrl, os.Args[2:])
	case "get":
		runErr = runGet(ctx, api, os.Args[2:])
	case "create":
		runErr = runCreate(ctx, ctrl, os.Args[2:])
	case "update":
		runErr = runUpdate(ctx, ctrl, os.Args[2:])
	case "delete":
		runErr = runDelete(ctx, ctrl, os.Args[2:])
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	shown := printNotification(ctrl)
	if runErr != nil {
		if !shown && runErr != form.ErrValidation {
			fmt.Fprintln(os.Stderr, runErr)
		}
		os.Exit(1)
	}
}

func runList(ctx context.Context, ctrl *controller.Controller, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	estado := fs.String("estado", "all", "filtro de estado: all|active|inactive")
	buscar := fs.String("buscar", "", "búsqueda por nombre o apellido")
	ordenar := fs.String("ordenar", "id", "clave de orden: id|nombre|apellido|fechanac")
	orden := fs.String("orden", "desc", "dirección: asc|desc")
	fs.Parse(args)

	if err := ctrl.Load(ctx); err != nil {
		return err
	}

	vista := listview.Apply(ctrl.Usuarios(), listview.Options{
		Filter: listview.Filter(*estado),
		Search: *buscar,
		SortBy: listview.SortKey(*ordenar),
		Order:  listview.Order(*orden),
	})

	now := time.Now()
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNOMBRE\tAPELLIDO\tNACIMIENTO\tEDAD\tESTADO")
	for _, u := range vista {
		estado := "activo"
		if !u.ActiveUser {
			estado = "inactivo"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%s\n",
			u.ID, u.Nombre, u.Apellido,
			u.Fechanac.Format(time.DateOnly),
			listview.Age(u.Fechanac, now),
			estado,
		)
	}
	return w.Flush()
}

func runGet(ctx context.Context, api *client.Client, args []string) error {
	id, err := parseIDArg(args)
	if err != nil {
		return err
	}

	usuario, err := api.Get(ctx, id)
	if err != nil {
		return err
	}

	estado := "activo"
	if !usuario.ActiveUser {
		estado = "inactivo"
	}
	fmt.Printf("%d: %s %s, nacimiento %s, %s\n",
		usuario.ID, usuario.Nombre, usuario.Apellido,
		usuario.Fechanac.Format(time.DateOnly), estado)
	return nil
}

func runCreate(ctx context.Context, ctrl *controller.Controller, args []string) error {
	fs := flag.NewFlagSet("create", flag.ExitOnError)
	nombre := fs.String("nombre", "", "nombre (obligatorio)")
	apellido := fs.String("apellido", "", "apellido (obligatorio)")
	fechanac := fs.String("fechanac", "", "fecha de nacimiento YYYY-MM-DD (obligatoria)")
	inactivo := fs.Bool("inactivo", false, "crear como inactivo")
	fs.Parse(args)

	f := form.New()
	f.SetNombre(*nombre)
	f.SetApellido(*apellido)
	f.SetFechanac(*fechanac)
	f.SetActiveUser(!*inactivo)

	return submitForm(ctx, f, ctrl.Create)
}

func runUpdate(ctx context.Context, ctrl *controller.Controller, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("falta el id de usuario")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("ID de usuario inválido: %q", args[0])
	}

	if err := ctrl.Load(ctx); err != nil {
		return err
	}
	if !ctrl.Edit(id) {
		return fmt.Errorf("usuario %d no está en la lista", id)
	}

	fs := flag.NewFlagSet("update", flag.ExitOnError)
	editing := ctrl.Editing()
	nombre := fs.String("nombre", editing.Nombre, "nombre")
	apellido := fs.String("apellido", editing.Apellido, "apellido")
	fechanac := fs.String("fechanac", editing.Fechanac.Format(time.DateOnly), "fecha de nacimiento YYYY-MM-DD")
	activo := fs.Bool("activo", editing.ActiveUser, "usuario activo")
	fs.Parse(args[1:])

	f := form.NewEdit(*editing)
	f.SetNombre(*nombre)
	f.SetApellido(*apellido)
	f.SetFechanac(*fechanac)
	f.SetActiveUser(*activo)

	return submitForm(ctx, f, func(ctx context.Context, payload client.UsuarioPayload) error {
		return ctrl.Update(ctx, id, payload)
	})
}

func runDelete(ctx context.Context, ctrl *controller.Controller, args []string) error {
	id, err := parseIDArg(args)
	if err != nil {
		return err
	}

	if err := ctrl.Load(ctx); err != nil {
		return err
	}
	return ctrl.Delete(ctx, id)
}

func submitForm(ctx context.Context, f *form.Form, send form.SubmitFunc) error {
	err := f.Submit(ctx, send)
	if err == form.ErrValidation {
		for campo, msg := range f.Errors() {
			fmt.Fprintf(os.Stderr, "%s: %s\n", campo, msg)
		}
	}
	return err
}

func parseIDArg(args []string) (int64, error) {
	if len(args) < 1 {
		return 0, fmt.Errorf("falta el id de usuario")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("ID de usuario inválido: %q", args[0])
	}
	return id, nil
}

func printNotification(ctrl *controller.Controller) bool {
	n := ctrl.Notification()
	if n == nil {
		return false
	}
	stream := os.Stdout
	if n.Severity == controller.SeverityDanger {
		stream = os.Stderr
	}
	fmt.Fprintln(stream, n.Message)
	return true
}
