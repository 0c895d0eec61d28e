package ast

import "github.com/Octa-Org/Rift/pkg/token"

func NewLiteral(value token.Token) *Literal {
	return &Literal{nodeImpl: newNodeImpl(NodeLiteral), Value: value}
}

func NewUnary(op token.Token, expr Expr) *Unary {
	return &Unary{nodeImpl: newNodeImpl(NodeUnary), Op: op, Expr: expr}
}

func NewBinary(left Expr, op token.Token, right Expr) *Binary {
	return &Binary{nodeImpl: newNodeImpl(NodeBinary), Left: left, Op: op, Right: right}
}

func NewGrouping(expr Expr) *Grouping {
	return &Grouping{nodeImpl: newNodeImpl(NodeGrouping), Expr: expr}
}

func NewAssign(name token.Token, value Expr) *Assign {
	return &Assign{nodeImpl: newNodeImpl(NodeAssign), Name: name, Value: value}
}

func NewTernary(cond, left, right Expr) *Ternary {
	return &Ternary{nodeImpl: newNodeImpl(NodeTernary), Cond: cond, Left: left, Right: right}
}

func NewCall(callee Expr, paren token.Token, args []Expr) *Call {
	return &Call{nodeImpl: newNodeImpl(NodeCall), Callee: callee, Paren: paren, Args: args}
}

func NewStmtExpr(expr Expr) *StmtExpr {
	return &StmtExpr{nodeImpl: newNodeImpl(NodeStmtExpr), Expr: expr}
}

func NewStmtPrint(expr Expr) *StmtPrint {
	return &StmtPrint{nodeImpl: newNodeImpl(NodeStmtPrint), Expr: expr}
}

func NewStmtIf(ifArm IfArm, elifs []IfArm, elseArm *ElseArm) *StmtIf {
	return &StmtIf{nodeImpl: newNodeImpl(NodeStmtIf), If: ifArm, Elifs: elifs, Else: elseArm}
}

func NewStmtReturn(keyword token.Token, expr Expr) *StmtReturn {
	return &StmtReturn{nodeImpl: newNodeImpl(NodeStmtReturn), Keyword: keyword, Expr: expr}
}

func NewFor(init Decl, cond Expr, step Stmt, block *Block, stmt Decl) *For {
	return &For{nodeImpl: newNodeImpl(NodeFor), Init: init, Cond: cond, Step: step, Block: block, Stmt: stmt}
}

func NewDeclStmt(stmt Stmt) *DeclStmt {
	return &DeclStmt{nodeImpl: newNodeImpl(NodeDeclStmt), Stmt: stmt}
}

func NewDeclVar(name token.Token, init Expr) *DeclVar {
	return &DeclVar{nodeImpl: newNodeImpl(NodeDeclVar), Name: name, Init: init}
}

func NewDeclFunc(name token.Token, params []token.Token, body *Block) *DeclFunc {
	return &DeclFunc{nodeImpl: newNodeImpl(NodeDeclFunc), Name: name, Params: params, Body: body}
}

func NewBlock(decls []Decl) *Block {
	return &Block{nodeImpl: newNodeImpl(NodeBlock), Decls: decls}
}

func NewProgram(decls []Decl) *Program {
	return &Program{nodeImpl: newNodeImpl(NodeProgram), Decls: decls}
}
